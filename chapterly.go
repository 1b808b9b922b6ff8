// Package chapterly fetches a single chapter of serialized web fiction,
// extracts its readable content, finds the link to the next chapter, and
// translates the text into a target language.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, readability/).
package chapterly
