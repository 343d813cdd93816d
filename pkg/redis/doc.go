// Package redis connects the platform to Redis with startup retry and
// exposes a health probe. The shared resolution cache is the main consumer:
// multiple gateway replicas point at one Redis so tenant routing decisions
// stay warm across restarts.
package redis
