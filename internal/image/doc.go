// Package image shrinks attachments before they enter the protocol. The
// longest dimension is bounded at 800 and the result is re-encoded as lossy
// JPEG, keeping wire packets small. A failure here aborts only the
// attachment; the rest of the compose state is untouched.
package image
