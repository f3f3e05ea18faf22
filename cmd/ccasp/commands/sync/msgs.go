package sync

// Message constants
const (
	MsgShort = "Compile templates and link them into the project"
	MsgLong  = `The 'sync' command is ccasp's primary operation. It compiles the template
library against the project's variables, then links the compiled files into
the project's .claude directory:
  - Creates symlinks into the per-project cache (or copies where symlinks
    are unsupported)
  - Skips every file you have customized, and tells you why
  - Is safe to re-run at any time; an interrupted sync just resumes`

	MsgExample = `  # Sync the current directory
  ccasp sync

  # Sync a specific project
  ccasp sync ~/work/api-server

  # Preview what a sync would do
  ccasp sync --dry-run

  # Force recompilation even if the cache is current
  ccasp sync --force`
)
