// Package cfpwatch watches publication-venue pages for newly announced
// calls for papers. It snapshots each venue page, diffs the new snapshot
// against the previous one, extracts links added by the change, fetches
// the linked pages as markdown, scores them against a personal knowledge
// base with an LLM, and emails a report.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, diffmatchpatch/, sqlite/, gemini/).
package cfpwatch
