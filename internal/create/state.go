package create

// State is the furthest point a run has reached.
type State int

const (
	Start State = iota
	NameValidated
	DirectoryCreated
	PackageInstalled
	Delegated
	Failed
)

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case NameValidated:
		return "NameValidated"
	case DirectoryCreated:
		return "DirectoryCreated"
	case PackageInstalled:
		return "PackageInstalled"
	case Delegated:
		return "Delegated"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}
