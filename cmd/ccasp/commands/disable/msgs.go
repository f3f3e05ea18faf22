package disable

// Message constants
const (
	MsgShort = "Turn sync off and make the project self-contained"
	MsgLong  = `The 'disable' command replaces every symlink into the project's cache with
an independent copy of its current content, then clears the sync record.
Your files keep their bytes; they just stop following the template library.`

	MsgExample = `  # Disable sync for the current directory
  ccasp disable`
)
