package oxm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrings(t *testing.T) {
	tokens := []string{
		"in_port=any",
		"in_port=10",
		"in_phy_port=10",
		"metadata=0x5/0xff",
		"eth_src=00:00:00:00:00:00",
		"eth_src=00:00:00:00:00:00/01:00:00:00:00:00",
		"eth_type=0x0800",
		"ipv4_src=192.168.0.1",
		"ipv4_src=192.168.0.1/255.255.255.0",
		"ipv4_src=192.168.0.1/255.0.255.255",
		"ipv6_src=::/ffff::",
		"vlan_vid=0x5",
		"vlan_vid=0x1000/0x1000",
		"tcp_dst=80",
		"ip_dscp=0x2e",
		"mpls_label=0x10",
		"pbb_isid=0x5",
		"tunnel_id=0x100",
	}
	for _, token := range tokens {
		f, n, err := ParseOne(token)
		require.NoError(t, err, token)
		assert.Equal(t, len(token), n, token)
		assert.Equal(t, token, Encode([]Field{f}, HostOrder).String())
	}

	all := strings.Join(tokens, ",")
	fields, n, err := Parse(all)
	require.NoError(t, err)
	assert.Equal(t, len(all), n)
	assert.Len(t, fields, len(tokens))
	assert.Equal(t, all, Encode(fields, HostOrder).String())
}

func TestToOxm(t *testing.T) {
	token := "ipv4_src=192.168.0.1/24"
	f, n, err := ParseOne(token)
	require.NoError(t, err)
	assert.Equal(t, len(token), n)

	o := Encode([]Field{f}, HostOrder)
	assert.Equal(t, []byte{192, 168, 0, 1, 255, 255, 255, 0}, []byte(o[4:]))
	assert.True(t, o.Header().HasMask())
	assert.Equal(t, 8, o.Header().Length())
}

func TestParseErrors(t *testing.T) {
	for _, token := range []string{
		"in_port=1/0xff",
		"eth_type=0x800/0xffff",
		"no_such_field=1",
		"ipv4_src=::1",
		"tcp_src=70000",
		"output=1",
	} {
		_, _, err := ParseOne(token)
		assert.Error(t, err, token)
	}
}

func TestParseStopsAtUnknownToken(t *testing.T) {
	txt := "in_port=1,tcp_dst=22,output=3"
	fields, n, err := Parse(txt)
	require.NoError(t, err)
	assert.Len(t, fields, 2)
	assert.Equal(t, "output=3", txt[n:])
}
