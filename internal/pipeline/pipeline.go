package pipeline

import (
	"context"
	"strings"

	"storescrapers/catalogworker/internal/item"
)

// RunTimestampLayout renders the per-run timestamp shared by every
// persisted path of one process invocation (DDMMYYYY_HHMM, UTC).
const RunTimestampLayout = "02012006_1504"

// Pipeline is one post-processing stage applied to every scraped
// record before the next stage. Returning a nil item drops the record.
type Pipeline interface {
	// Name returns the stage name for logging
	Name() string

	// ProcessItem processes one record
	ProcessItem(ctx context.Context, it item.Item) (item.Item, error)
}

// objectKey builds a slash-separated storage key:
// {domain}/{run_timestamp}[/{prefix}]/{parts...}
func objectKey(domain, runTimestamp, folderPrefix string, parts ...string) string {
	segments := []string{domain, runTimestamp}
	if folderPrefix != "" {
		segments = append(segments, folderPrefix)
	}
	segments = append(segments, parts...)
	return strings.Join(segments, "/")
}
