package domain

// Source labels where ingested content came from.
type Source string

const (
	// SourceUpload marks content ingested from an upload stream.
	SourceUpload Source = "upload"
	// SourceFolder marks content ingested from a picked folder.
	SourceFolder Source = "folder"
)

// IngestResult describes one successful upload ingestion.
type IngestResult struct {
	Name  string
	Entry CacheEntry
}

// BatchItem is the outcome of one item of a batch ingestion.
type BatchItem struct {
	Position    int
	Name        string
	Entry       CacheEntry
	MemoryDelta int64
	Err         error
}

// BatchResult collects the items a batch ingestion processed, in input order.
// Items that were never reached (after an abort) are absent.
type BatchResult struct {
	ID    string
	Items []BatchItem
}

// Succeeded returns the number of items ingested without error.
func (r BatchResult) Succeeded() int {
	n := 0
	for _, item := range r.Items {
		if item.Err == nil {
			n++
		}
	}
	return n
}

// FolderResult describes a folder ingestion.
type FolderResult struct {
	// Path is what the picker returned, possibly empty.
	Path string
	// Ingested is false when Path was not an existing directory.
	Ingested bool
	// Files lists the display names read from the folder, in lexical order.
	Files []string
}
