package hashes_test

import (
	"testing"

	"asset-cloner/core/hashes"

	"github.com/stretchr/testify/assert"
)

func TestCRC(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want uint32
	}{
		{"Empty", "", 0x00000000},
		{"SingleByte", "a", 0x3ab551ce},
		{"DefaultDisplayName", "CUST_WPN_COSTUME_DESC_LTPISTOL_0", 0xa2eda406},
		{"DefaultDescription", "CUST_WPN_COSTUME_DESC_LTPISTOL_0_DESC", 0xe0f0cd38},
		{"ModKey", "MOD_WPN_ZAPGUN", 0xf67234e0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hashes.CRC(tt.key))
		})
	}
}

func TestCRC_CaseInsensitive(t *testing.T) {
	assert.Equal(t, hashes.CRC("cust_wpn_costume_desc_ltpistol_0"), hashes.CRC("CUST_WPN_COSTUME_DESC_LTPISTOL_0"))
	assert.Equal(t, hashes.CRC("Pistol_Base.ccmesh_pc"), hashes.CRCBytes([]byte("pistol_base.ccmesh_pc")))
}

func TestCRC_Stable(t *testing.T) {
	first := hashes.CRC("CUST_WPN_COSTUME_DESC_LTPISTOL_0")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, hashes.CRC("CUST_WPN_COSTUME_DESC_LTPISTOL_0"))
	}
}
