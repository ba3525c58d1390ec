package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"no-commit.txt":        {Data: []byte("Skip the automatic commit")},
		"archive.md":           {Data: []byte("# Archive\n\nWhere tracked files live")},
		"config.txxt":          {Data: []byte("Configuration Guide\n==================")},
		"ignore.json":          {Data: []byte("This should be ignored")},
		"option-verbose.txt":   {Data: []byte("Verbose help")},
		"advanced/backups.txt": {Data: []byte("Backup help")},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicFS())
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"no-commit", true, "Skip the automatic commit"},
			{"archive", true, "# Archive\n\nWhere tracked files live"},
			{"config", false, ""}, // .txxt not in defaults
			{"ignore", false, ""},
			{"backups", true, "Backup help"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicFS(), Options{
			Extensions: []string{".txt", ".md", ".txxt"},
		})
		require.NoError(t, tm.scanTopics())

		topic, exists := tm.GetTopic("config")
		require.True(t, exists)
		assert.Equal(t, "Configuration Guide\n==================", topic.Content)

		_, exists = tm.GetTopic("ignore")
		assert.False(t, exists)
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"archive", "archive", true},
		{"option-verbose", "option-verbose", true},
		{"verbose", "option-verbose", true},
		{"--verbose", "option-verbose", true},
		{"--no-commit", "no-commit", true},
		{"-v", "", false}, // Single letter flags don't match
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManager_ListTopics(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	assert.Equal(t, []string{"archive", "backups", "no-commit", "option-verbose"}, tm.ListTopics())
}

func TestNoTopics(t *testing.T) {
	tm := New(nil)
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())

	tm = New(fstest.MapFS{})
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func newApp(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "testapp", Short: "Test application"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	require.NoError(t, Initialize(rootCmd, topicFS()))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	return rootCmd, &out
}

func TestInitialize(t *testing.T) {
	rootCmd, _ := newApp(t)

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help", helpCmd.Name())
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestIntegration_HelpTopic(t *testing.T) {
	rootCmd, out := newApp(t)

	rootCmd.SetArgs([]string{"help", "no-commit"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Skip the automatic commit")
}

func TestIntegration_TopicIndex(t *testing.T) {
	rootCmd, out := newApp(t)

	rootCmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "General topics:")
	assert.Contains(t, out.String(), "  archive")
	assert.Contains(t, out.String(), "  --verbose")
	assert.Contains(t, out.String(), "Use 'testapp help <topic>'")
}
