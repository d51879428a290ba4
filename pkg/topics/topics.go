// Package topics adds file based help topics to a cobra command tree.
// Topics are read from an fs.FS, so a binary can ship them embedded, and are
// shown by "help <topic>". "help topics" lists them.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/bongard/pkg/logging"
)

// optionPrefix marks topics that document a flag, e.g. option-seed.md.
const optionPrefix = "option-"

// Manager holds the topics found in a file tree.
type Manager struct {
	fsys       fs.FS
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Topic represents a help topic
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Format is the file extension of the topic, used to pick a rendering.
func (t *Topic) Format() string {
	return path.Ext(t.Path)
}

// Options configures the Manager
type Options struct {
	// Extensions lists the file extensions considered topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// New scans fsys for topics.
func New(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	if err := m.scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return m, nil
}

func (m *Manager) scan() error {
	return fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Get finds a topic by name. Flag spellings (--seed, -seed, seed) also find
// the matching option- topic.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics[optionPrefix+name]
	return t, ok
}

// List returns every topic name, sorted.
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the topic formatted by the manager's renderer.
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, t.Format())
}

// WriteList prints the topic index, general topics first then flag topics.
func (m *Manager) WriteList(w io.Writer, program string) {
	names := m.List()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, optionPrefix) {
			options = append(options, strings.TrimPrefix(name, optionPrefix))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Install replaces the help command of root with one that also knows the
// manager's topics. Anything that is not a topic goes to cobra's help.
func (m *Manager) Install(root *cobra.Command) {
	logger := logging.GetLogger("topics")
	originalHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				originalHelp(root, []string{})
				return
			}
			if args[0] == "topics" {
				m.WriteList(out, root.Name())
				return
			}
			if t, ok := m.Get(args[0]); ok {
				logger.Debug().Str("topic", t.Name).Msg("Showing help topic")
				fmt.Fprint(out, m.Render(t))
				return
			}

			target, _, err := root.Find(args)
			if err != nil || target == nil {
				originalHelp(root, args)
				return
			}
			originalHelp(target, args)
		},
		DisableFlagParsing: true,
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
