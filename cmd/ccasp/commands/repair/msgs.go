package repair

// Message constants
const (
	MsgShort = "Fix broken links into the project cache"
	MsgLong  = `The 'repair' command finds symlinks whose target is missing or wrong,
recompiles their cache files where the backing template still exists, and
relinks them. Links whose template was removed upstream are reported and
left in place; repair never deletes anything.`

	MsgExample = `  # Repair the current directory
  ccasp repair

  # Repair a specific project
  ccasp repair ~/work/api-server`
)
