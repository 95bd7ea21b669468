// Package linux provides X11 platform support through xdotool and xclip.
package linux
