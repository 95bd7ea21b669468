package command

import "context"

// Dispatcher sends text to the game: chat commands and whispers, and the
// in-game item search.
type Dispatcher interface {
	// Command types a chat line such as "/kick Name" or "@Name hi".
	Command(ctx context.Context, text string) error
	// Search fills the stash search box with text.
	Search(ctx context.Context, text string) error
	// ClearSearch empties the stash search box.
	ClearSearch(ctx context.Context) error
}
