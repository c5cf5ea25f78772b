package tagbridge

// SaveOption configures how a file is saved.
//
//	err := file.Save(
//	    tagbridge.WithBackup(".bak"),
//	    tagbridge.WithValidation(),
//	)
type SaveOption func(*saveOptions)

type saveOptions struct {
	backupSuffix    string // copy the file to path+suffix before writing
	validate        bool   // re-open after writing and compare properties
	preserveModTime bool   // restore the modification time after writing
}

func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithBackup copies the file to its path plus suffix before saving.
// WithBackup(".bak") keeps "song.mp3.bak" next to "song.mp3". An existing
// backup is overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-opens the file after saving and checks that it reads
// back the same property map that was written.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the file's modification time unchanged.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}
