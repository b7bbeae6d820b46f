package gen

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"k8s.io/klog/v2"
)

//go:embed templates/*
var embedded embed.FS

// Writer renders one output file from the template of the same name.
type Writer interface {
	// Write renders filename with the variables returned by env.
	Write(filename string, env func() (map[string]any, error)) error
	// Flush persists every file rendered so far.
	Flush() error
}

// File is a rendered output.
type File struct {
	Name    string
	Content []byte
}

// FileManager renders templates into memory and writes them to InstallDir on Flush.
type FileManager struct {
	// InstallDir is the directory generated files are written to.
	InstallDir string
	// TemplateDir overrides the embedded templates when non-empty.
	TemplateDir string
	// DryRun renders everything but writes nothing.
	DryRun bool

	files []File
	err   error
}

// NewFileManager creates a FileManager.
func NewFileManager(installDir, templateDir string, dryRun bool) *FileManager {
	return &FileManager{InstallDir: installDir, TemplateDir: templateDir, DryRun: dryRun}
}

// Write renders filename. A failed render is remembered and makes Flush fail.
func (fm *FileManager) Write(filename string, env func() (map[string]any, error)) error {
	content, err := fm.render(filename, env)
	if err != nil {
		err = errors.Wrapf(err, "rendering %s", filename)
		fm.err = multierr.Append(fm.err, err)

		return err
	}

	for i := range fm.files {
		if fm.files[i].Name == filename {
			err := errors.Errorf("%s rendered twice", filename)
			fm.err = multierr.Append(fm.err, err)

			return err
		}
	}

	fm.files = append(fm.files, File{Name: filename, Content: content})

	return nil
}

func (fm *FileManager) render(filename string, env func() (map[string]any, error)) ([]byte, error) {
	text, source, err := fm.templateText(filename)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(filename).Funcs(templateFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "parsing template")
	}

	vars, err := env()
	if err != nil {
		return nil, err
	}

	data := make(map[string]any, len(vars)+1)
	data["generated_comment"] = "@generated from " + source

	for k, v := range vars {
		data[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	return buf.Bytes(), nil
}

// templateText returns the template for filename and a name describing where it came from.
func (fm *FileManager) templateText(filename string) (string, string, error) {
	if fm.TemplateDir != "" {
		path := filepath.Join(fm.TemplateDir, filename)

		b, err := os.ReadFile(path)
		if err != nil {
			return "", "", errors.Wrap(err, "reading template")
		}

		return string(b), path, nil
	}

	name := "templates/" + filename

	b, err := embedded.ReadFile(name)
	if err != nil {
		return "", "", errors.Errorf("no template named %s", filename)
	}

	return string(b), name, nil
}

// Files returns the rendered files in the order they were written.
func (fm *FileManager) Files() []File {
	return fm.files
}

// Flush writes the rendered files to InstallDir. Nothing is written when any
// render failed. Files whose content is unchanged are left untouched.
func (fm *FileManager) Flush() error {
	if fm.err != nil {
		return errors.Wrap(fm.err, "not writing any output")
	}

	if fm.DryRun {
		for _, f := range fm.files {
			klog.Infof("dry run: would write %s (%d bytes)", filepath.Join(fm.InstallDir, f.Name), len(f.Content))
		}

		return nil
	}

	if err := os.MkdirAll(fm.InstallDir, dirPerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	written, err := writeFilesAtomic(fm.InstallDir, fm.files)
	if err != nil {
		return errors.Wrap(err, "no output was changed")
	}

	klog.V(1).Infof("wrote %d of %d files into %s", len(written), len(fm.files), fm.InstallDir)

	return nil
}

var templateFuncs = template.FuncMap{
	"lines":  func(fragments []string) string { return strings.Join(fragments, "\n") },
	"indent": indent,
	"lower":  strings.ToLower,
}

func indent(n int, fragments []string) string {
	pad := strings.Repeat(" ", n)

	var sb strings.Builder

	for i, frag := range fragments {
		if i > 0 {
			sb.WriteString("\n")
		}

		for j, line := range strings.Split(strings.TrimSuffix(frag, "\n"), "\n") {
			if j > 0 {
				sb.WriteString("\n")
			}

			if line != "" {
				sb.WriteString(pad + line)
			}
		}
	}

	return sb.String()
}
