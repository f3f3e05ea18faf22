package capability

// Message constants
const (
	MsgShort = "Probe whether this system supports symlinks"
	MsgLong  = `The 'capability' command attempts to create a throwaway symlink in a temp
location and reports the result. When symlinks are unavailable, sync
transparently falls back to copying files.`

	MsgExample = `  ccasp capability`
)
