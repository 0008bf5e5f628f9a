package domain

// CleanupItem is the outcome of removing one stored object.
type CleanupItem struct {
	Key string
	Err error
}

// CleanupReport collects per-object outcomes of a best-effort removal.
// It is informational: a failed item never aborts the enclosing operation.
type CleanupReport struct {
	Items []CleanupItem
}

// Failed returns the items whose removal failed.
func (r CleanupReport) Failed() []CleanupItem {
	var failed []CleanupItem
	for _, it := range r.Items {
		if it.Err != nil {
			failed = append(failed, it)
		}
	}
	return failed
}

// FailedKeys lists the keys of objects that may be orphaned.
func (r CleanupReport) FailedKeys() []string {
	var keys []string
	for _, it := range r.Failed() {
		keys = append(keys, it.Key)
	}
	return keys
}

func (r CleanupReport) OK() bool {
	return len(r.Failed()) == 0
}
