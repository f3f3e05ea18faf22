package status

// Message constants
const (
	MsgShort = "Show the sync health of a project"
	MsgLong  = `The 'status' command reports a read-only health view: whether sync is
enabled and by which method, whether the cache is current for this ccasp
version, and a classification of every tracked path (linked, copied,
customized, broken, missing). Nothing is modified.`

	MsgExample = `  # Status of the current directory
  ccasp status

  # Status of a specific project
  ccasp status ~/work/api-server`
)
