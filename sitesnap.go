// Package sitesnap crawls public websites, discovers their page hierarchy,
// and snapshots each page's main content as HTML and structured plain text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/).
package sitesnap
