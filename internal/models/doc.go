// Package models lists the voices and models a synthesis provider offers,
// so they can be picked for --openai-voice, --google-voice and friends.
package models
