// Package llmstxt turns directories of HTML documentation into clean
// markdown plus an llms.txt manifest. The conversion engine lives in
// htmltomarkdown/; this package contains domain types, interfaces, and
// pure string utilities following Ben Johnson's Standard Package
// Layout. Implementations live in subdirectories named after their
// primary dependency (e.g., sqlite/, goquery/, trafilatura/).
package llmstxt
