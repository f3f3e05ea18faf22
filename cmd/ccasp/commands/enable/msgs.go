package enable

// Message constants
const (
	MsgShort = "Turn sync on for a project"
	MsgLong  = `The 'enable' command marks a project for syncing and records the link
method the OS supports (symlink where possible, copy otherwise). Run
'ccasp sync' afterwards to actually link files.`

	MsgExample = `  # Enable sync for the current directory
  ccasp enable`
)
