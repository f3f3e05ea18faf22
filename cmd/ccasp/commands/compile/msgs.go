package compile

// Message constants
const (
	MsgShort = "Render templates into the project cache"
	MsgLong  = `The 'compile' command renders the template library against the project's
variables into the per-project cache, without touching the project tree.
Compilation is idempotent: when the cache was built by the same ccasp
version it is a no-op unless --force is given.`

	MsgExample = `  # Compile the current directory's cache
  ccasp compile

  # Force a rebuild
  ccasp compile --force ~/work/api-server`
)
