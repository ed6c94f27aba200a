package driven

// FileLauncher hands results to the desktop environment.
type FileLauncher interface {
	// Launch opens path in the default application without waiting for it to exit.
	Launch(path string) error

	// CopyText places text on the system clipboard.
	CopyText(text string) error
}
