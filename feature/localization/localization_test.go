package localization_test

import (
	"testing"

	"asset-cloner/core/hashes"
	"asset-cloner/feature/localization"
	"asset-cloner/internal/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadAll(t *testing.T) {
	src, _ := fixtures.Source(t)
	core, logs := observer.New(zap.WarnLevel)

	table, err := localization.LoadAll(src, "*.le_strings", zap.New(core))
	require.NoError(t, err)

	langs := table.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, "de", langs[0].Code)
	assert.Equal(t, "us", langs[1].Code)

	t.Run("Lookup", func(t *testing.T) {
		s, ok := table.Lookup("us", localization.HashOf(fixtures.DisplayKey))
		require.True(t, ok)
		assert.Equal(t, "Tactical Pistol", s)

		s, ok = table.LookupKey("de", fixtures.DisplayKey)
		require.True(t, ok)
		assert.Equal(t, "Taktische Pistole", s)
	})

	t.Run("FirstFileWins", func(t *testing.T) {
		s, _ := table.LookupKey("us", fixtures.DisplayKey)
		assert.NotEqual(t, "Shadowed", s)
	})

	t.Run("MissingIsNotFatal", func(t *testing.T) {
		_, ok := table.LookupKey("de", fixtures.DescriptionKey)
		assert.False(t, ok)
		_, ok = table.LookupKey("fr", fixtures.DisplayKey)
		assert.False(t, ok)
	})

	t.Run("UnknownLocaleWarned", func(t *testing.T) {
		assert.Equal(t, 1, logs.FilterMessage("Skipping string file with unknown locale").Len())
	})

	assert.Equal(t, 4, table.Len("us"))
}

func TestHashOf(t *testing.T) {
	assert.Equal(t, uint32(0xa2eda406), localization.HashOf("CUST_WPN_COSTUME_DESC_LTPISTOL_0"))
	assert.Equal(t, hashes.CRC("x"), localization.HashOf("X"))
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		code string
		name string
	}{
		{"us", "English"},
		{"jp", "Japanese"},
		{"de", "German"},
		{"cz", "Czech"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			l, ok := localization.LookupCode(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.name, l.Name())
		})
	}

	_, ok := localization.LookupCode("xx")
	assert.False(t, ok)
	assert.Contains(t, localization.Codes(), "kr")
}

func TestCodeFromFile(t *testing.T) {
	assert.Equal(t, "us", localization.CodeFromFile("static_text_us.le_strings"))
	assert.Equal(t, "de", localization.CodeFromFile(`data\DLC1_TEXT_DE.le_strings`))
	assert.Equal(t, "plain", localization.CodeFromFile("plain.le_strings"))
}
