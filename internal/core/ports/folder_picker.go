package ports

import "context"

// FolderPicker lets the user choose a directory.
//
//go:generate mockgen -source=folder_picker.go -destination=mocks/mock_folder_picker.go -package=mocks
type FolderPicker interface {
	// PickFolder returns the chosen directory, or "" when nothing was selected.
	// Failures of the underlying picker are reported as "".
	PickFolder(ctx context.Context) string
}
