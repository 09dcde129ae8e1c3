package interview

import "fmt"

type Tab string

const (
	TabAvailable Tab = "available"
	TabAssigned  Tab = "assigned"
	TabCompleted Tab = "completed"
)

var Tabs = []Tab{TabAvailable, TabAssigned, TabCompleted}

func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabAvailable, TabAssigned, TabCompleted:
		return t, nil
	case "":
		return TabAvailable, nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Status is the only status a tab shows.
func (t Tab) Status() Status {
	switch t {
	case TabAssigned:
		return StatusAssigned
	case TabCompleted:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Mine reports whether the tab is served by my-interviews rather than the open pool.
func (t Tab) Mine() bool {
	return t != TabAvailable
}

// Filter keeps the requests whose status belongs to tab. The input is not modified.
func Filter(tab Tab, list []Request) []Request {
	want := tab.Status()
	out := make([]Request, 0, len(list))
	for _, r := range list {
		if r.Status == want {
			out = append(out, r)
		}
	}
	return out
}

// Partition places every request in at most one tab; cancelled and unknown
// statuses appear in none.
func Partition(list []Request) map[Tab][]Request {
	out := make(map[Tab][]Request, len(Tabs))
	for _, t := range Tabs {
		out[t] = Filter(t, list)
	}
	return out
}
