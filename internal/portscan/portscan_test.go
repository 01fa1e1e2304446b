package portscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const windowsNetstat = `
Active Connections

  Proto  Local Address          Foreign Address        State
  TCP    0.0.0.0:135            0.0.0.0:0              LISTENING
  TCP    0.0.0.0:11000          0.0.0.0:0              LISTENING
  TCP    127.0.0.1:3005         0.0.0.0:0              LISTENING
  TCP    192.168.1.10:49155     40.90.189.152:443      ESTABLISHED
  TCP    [::]:135               [::]:0                 LISTENING
  UDP    0.0.0.0:5353           *:*
`

const linuxNetstat = `
Active Internet connections (servers and established)
Proto Recv-Q Send-Q Local Address           Foreign Address         State
tcp        0      0 0.0.0.0:22              0.0.0.0:*               LISTEN
tcp        0      0 127.0.0.1:3306          0.0.0.0:*               LISTEN
tcp        0      0 10.0.0.5:22             10.0.0.9:51234          ESTABLISHED
tcp6       0      0 :::8080                 :::*                    LISTEN
`

const bsdNetstat = `
Active Internet connections (including servers)
Proto Recv-Q Send-Q  Local Address          Foreign Address        (state)
tcp4       0      0  127.0.0.1.8021         *.*                    LISTEN
tcp6       0      0  ::1.8021               *.*                    LISTEN
tcp4       0      0  192.168.1.2.50312      151.101.1.140.443      ESTABLISHED
`

func TestParseNetstatWindows(t *testing.T) {
	ports := parseNetstat(windowsNetstat)
	require.Equal(t, map[int]struct{}{
		135:   {},
		11000: {},
		3005:  {},
	}, ports)
}

func TestParseNetstatLinux(t *testing.T) {
	ports := parseNetstat(linuxNetstat)
	require.Equal(t, map[int]struct{}{
		22:   {},
		3306: {},
		8080: {},
	}, ports)
}

func TestParseNetstatBSD(t *testing.T) {
	ports := parseNetstat(bsdNetstat)
	require.Equal(t, map[int]struct{}{
		8021: {},
	}, ports)
}

func TestParseNetstatEmpty(t *testing.T) {
	require.Empty(t, parseNetstat(""))
	require.Empty(t, parseNetstat("garbage output\nwith no listeners\n"))
}

func TestSplitPort(t *testing.T) {
	tests := []struct {
		addr string
		port int
		ok   bool
	}{
		{"0.0.0.0:80", 80, true},
		{"[::]:443", 443, true},
		{":::8080", 8080, true},
		{"127.0.0.1.8021", 8021, true},
		{"*.22", 22, true},
		{"::1.8021", 8021, true},
		{"*.*", 0, false},
		{"0.0.0.0:*", 0, false},
		{"tcp", 0, false},
		{"0", 0, false},
		{"1.2.3.4:0", 0, false},
		{"1.2.3.4:70000", 0, false},
	}

	for _, tt := range tests {
		port, ok := splitPort(tt.addr)
		require.Equal(t, tt.ok, ok, "addr %q", tt.addr)
		if tt.ok {
			require.Equal(t, tt.port, port, "addr %q", tt.addr)
		}
	}
}
