package ports

import "context"

// ImageStore is the outbound contract for the media service holding refund
// proof images. Deletion is best-effort housekeeping; callers log failures
// and move on.
type ImageStore interface {
	// Delete removes the image behind the given reference.
	Delete(ctx context.Context, ref string) error
}
