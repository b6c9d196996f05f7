package descriptions

// Tool descriptions with practical examples and use cases

const (
	PDFExtractOutlineDescription = `Extract a hierarchical outline (title plus H1-H3 headings with page numbers) from a PDF file.

**When to use:** Need the document's structure - title, sections, subsections - without reading the full text.

**Why it's useful:** Works purely from font and layout metadata, so it handles PDFs that carry no bookmark tree. Returns the same JSON schema the batch mode writes to disk.

**Examples:**
• Navigation: "Get the outline of annual-report.pdf to jump to the financials section"
• Summarization prep: "Extract headings from manual.pdf to plan a chapter-by-chapter summary"
• Cataloging: "Pull titles and section lists from every PDF in /archive/"

**Best practices:** Run pdf_validate_file first for unknown files; scanned image-only PDFs yield an empty outline since there is no text layer to classify.`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before attempting to extract an outline from any PDF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted or encrypted files early, and ensures compatibility with the extraction pipeline.

**Examples:**
• Batch processing safety: "Validate all PDFs in /invoices/ before bulk outline extraction"
• Upload verification: "Check user-uploaded contract.pdf is valid before processing"

**Best practices:** Always run this first in automated workflows handling unknown PDFs.`

	PDFSearchDirectoryDescription = `Discover and filter PDF files across directories with intelligent search.

**When to use:** Need to find specific PDFs by name patterns, explore unknown directories, or build file inventories.

**Why it's useful:** Quickly locates relevant documents without manual browsing, supports fuzzy matching for partial names.

**Examples:**
• Find reports: "Find all PDF files with 'quarterly' in /reports/ directory"
• Inventory building: "List all PDFs in /archive/ to understand content scope"

**Best practices:** Use fuzzy search for partial matches, then feed the resulting paths to pdf_extract_outline.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"pdf_extract_outline":  PDFExtractOutlineDescription,
	"pdf_validate_file":    PDFValidateFileDescription,
	"pdf_search_directory": PDFSearchDirectoryDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
