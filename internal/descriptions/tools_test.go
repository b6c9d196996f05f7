package descriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetToolDescription(t *testing.T) {
	for name := range ToolDescriptions {
		assert.NotEmpty(t, GetToolDescription(name))
	}
	assert.Equal(t, "Tool description not available", GetToolDescription("unknown_tool"))
}

func TestGetAllToolNames(t *testing.T) {
	names := GetAllToolNames()
	assert.Len(t, names, len(ToolDescriptions))
	assert.Contains(t, names, "pdf_extract_outline")
	assert.Contains(t, names, "pdf_validate_file")
	assert.Contains(t, names, "pdf_search_directory")
}
