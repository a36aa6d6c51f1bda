package fortios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_NestedStanzas(t *testing.T) {
	s := NewScript()
	s.Config("router route-map")
	s.Edit("LOCAL_REGION")
	s.Config("rule")
	s.EditID(1)
	s.SetQuoted("set-community", "no-export")
	s.Next()
	s.End()
	s.Next()
	s.End()

	want := `config router route-map
    edit "LOCAL_REGION"
        config rule
            edit 1
                set set-community "no-export"
            next
        end
    next
end`
	assert.Equal(t, want, s.String())
	require.NoError(t, s.Validate())
}

func TestScript_SetVariants(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *Script)
		want  string
	}{
		{"raw value", func(s *Script) { s.Set("ip", "10.0.0.1/32") }, "set ip 10.0.0.1/32"},
		{"raw value with space", func(s *Script) { s.Set("prefix", "10.0.0.0 255.255.255.0") }, "set prefix 10.0.0.0 255.255.255.0"},
		{"empty raw value", func(s *Script) { s.Set("ip", "") }, "set ip "},
		{"int", func(s *Script) { s.SetInt("network-id", 1) }, "set network-id 1"},
		{"quoted single", func(s *Script) { s.SetQuoted("vdom", "root") }, `set vdom "root"`},
		{"quoted multiple", func(s *Script) { s.SetQuoted("service", "PING", "BGP") }, `set service "PING" "BGP"`},
		{"enable", func(s *Script) { s.Enable("keepalive") }, "set keepalive enable"},
		{"disable", func(s *Script) { s.Disable("add-route") }, "set add-route disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScript()
			tt.build(s)
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestScript_BlankLinesAreNotIndented(t *testing.T) {
	s := NewScript()
	s.Config("router bgp")
	s.Set("as", "65001")
	s.Blank()
	s.Config("network")
	s.End()
	s.End()

	lines := s.Lines()
	require.Len(t, lines, 6)
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "    config network", lines[3])
	assert.Equal(t, "    end", lines[4])
}

func TestScript_Unbalanced(t *testing.T) {
	s := NewScript()
	s.Config("system settings")
	assert.Equal(t, 1, s.Depth())
	assert.Error(t, s.Validate())

	// Extra closers never drive depth negative.
	s.End()
	s.End()
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, "config system settings\nend\nend", s.String())
}

func TestQuote_NoEscaping(t *testing.T) {
	assert.Equal(t, `"a"b"`, Quote(`a"b`))
	assert.Equal(t, `""`, Quote(""))
}
