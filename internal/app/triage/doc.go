// Package triage holds the pure rules applied to incoming requests:
// keyword priority classification, case summaries and the canned chat
// replies.
package triage
