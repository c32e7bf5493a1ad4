package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSections_WellFormed(t *testing.T) {
	raw := `Here is the analysis.

### 1. Severity assessment
Moderate overall.
---

### 2. Pattern analysis
Mostly on Mondays.

### 3. Cautions and lifestyle tips
Sleep well.

### 4. Information for your physician
Pain 5/10 average.

### 5. Additional recommendations
Keep logging.
***
`

	sections, ok := SplitSections(raw)
	require.True(t, ok)
	require.Len(t, sections, 5)

	assert.Equal(t, Section{Kind: KindSeverity, Title: "Severity assessment", Body: "Moderate overall."}, sections[0])
	assert.Equal(t, KindPattern, sections[1].Kind)
	assert.Equal(t, KindCaution, sections[2].Kind)
	assert.Equal(t, KindPhysician, sections[3].Kind)
	assert.Equal(t, KindRecommendation, sections[4].Kind)
	assert.Equal(t, "Keep logging.", sections[4].Body)
}

func TestSplitSections_UnknownTitleIsOther(t *testing.T) {
	sections, ok := SplitSections("### 6. Summary\nAll good\n### \n")
	require.True(t, ok)
	require.Len(t, sections, 1)
	assert.Equal(t, KindOther, sections[0].Kind)
	assert.Equal(t, "Summary", sections[0].Title)
}

func TestSplitSections_Fallback(t *testing.T) {
	sections, ok := SplitSections("The model ignored the template.\n---\nStill useful.")
	assert.False(t, ok)
	require.Len(t, sections, 1)
	assert.Equal(t, KindOther, sections[0].Kind)
	assert.Equal(t, "The model ignored the template.\nStill useful.", sections[0].Body)

	sections, ok = SplitSections("   ")
	assert.False(t, ok)
	assert.Empty(t, sections)
}
