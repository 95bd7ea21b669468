package cmd

// Each backend registers itself with platform.NewProviderFunc on its own OS.
import (
	_ "github.com/mj1618/trade-overlay/internal/platform/darwin"
	_ "github.com/mj1618/trade-overlay/internal/platform/linux"
	_ "github.com/mj1618/trade-overlay/internal/platform/windows"
)
