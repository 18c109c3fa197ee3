package flagx

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	cliFlags := []string{"-a", "-d", "-t", "-l"}

	cases := map[string]struct {
		args []string
		keep []string
		want []string
	}{
		"server and storage kept, config dropped": {
			args: []string{"-c", "br.json", "-a", "http://api:8080", "-d", "br.db"},
			keep: cliFlags,
			want: []string{"-a", "http://api:8080", "-d", "br.db"},
		},
		"equals form": {
			args: []string{"-t=3s", "-x=1", "-l=debug"},
			keep: cliFlags,
			want: []string{"-t=3s", "-l=debug"},
		},
		"equals form keeps a dash-leading value": {
			args: []string{"-config=--odd.json"},
			keep: []string{"-config"},
			want: []string{"-config=--odd.json"},
		},
		"trailing flag without value": {
			args: []string{"-a"},
			keep: cliFlags,
			want: []string{"-a"},
		},
		"next flag is not taken as a value": {
			args: []string{"-c", "-a", "http://api"},
			keep: []string{"-c"},
			want: []string{"-c"},
		},
		"positional arguments dropped": {
			args: []string{"list", "-l", "info", "extra"},
			keep: cliFlags,
			want: []string{"-l", "info"},
		},
		"repeated flag keeps order": {
			args: []string{"-c", "one.json", "-config", "two.json", "-c", "three.json"},
			keep: []string{"-c", "-config"},
			want: []string{"-c", "one.json", "-config", "two.json", "-c", "three.json"},
		},
		"no args": {
			args: nil,
			keep: cliFlags,
			want: []string{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.keep)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("FilterArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")

	assert.Equal(t, "/etc/br/short.json", ConfigPath([]string{"-c", "/etc/br/short.json"}))
	assert.Equal(t, "/etc/br/long.json", ConfigPath([]string{"-a", "http://api", "-config", "/etc/br/long.json"}))
	assert.Equal(t, "/etc/br/2.json", ConfigPath([]string{"-c", "/etc/br/1.json", "-config=/etc/br/2.json"}))
	assert.Empty(t, ConfigPath([]string{"-d", "br.db", "-l", "debug"}))
}

func TestConfigPath_EnvFallback(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/etc/bookreview.json")

	assert.Equal(t, "/etc/bookreview.json", ConfigPath([]string{"-a", "http://x"}))
	assert.Equal(t, "/flag.json", ConfigPath([]string{"-c", "/flag.json"}))
}

func TestJsonConfigFlags_UsesProcessArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(ConfigEnvVar, "")

	os.Args = []string{"bookreview", "-l", "info", "-c", "/home/reader/br.json"}
	assert.Equal(t, "/home/reader/br.json", JsonConfigFlags())
}
