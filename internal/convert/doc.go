// Package convert chains the two external conversion stages: proprietary
// blob to WAV via vgmstream-cli, then WAV to Ogg Vorbis via ffmpeg. The
// intermediate WAV never outlives a single call.
package convert
