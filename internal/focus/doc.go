// Package focus owns the process-wide "safe to render" signal.
//
// The signal is a single observable boolean: the window is focused, the
// document is visible, and no screenshot gesture was just seen. The UI
// shell feeds raw events in (FocusGained, FocusLost, VisibilityChanged,
// KeyDown); every consumer (the obscuring shield, the per-message reveal
// gates, the full-screen preview) subscribes to the one derived value so
// they always agree within the same dispatch.
//
// Dropping to unsafe is immediate. Returning to safe is debounced briefly
// so rapid tab switching does not flicker the shield. A recognized
// screenshot chord additionally overwrites the clipboard, best effort; none
// of this is a security boundary, only a deterrent against casual capture.
package focus
