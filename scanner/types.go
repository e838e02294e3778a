package scanner

import "go.uber.org/zap"

// ScanOptions defines the options for walking a folder
type ScanOptions struct {
	FolderPath string
	Logger     *zap.Logger
	// Tally is updated for every visited entry when set
	Tally *Tally
}

// Entry is one filesystem node produced by a walk
type Entry struct {
	Path  string
	IsDir bool
}
