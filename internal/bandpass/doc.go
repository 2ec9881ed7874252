// Package bandpass renders the time-averaged response of a receiver
// across its frequency channels, either as an image file with a
// frequency axis and a secondary channel-number axis, or as a terminal
// preview.
package bandpass
