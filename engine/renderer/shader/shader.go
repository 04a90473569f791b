// package shader embeds the WGSL sources used by the render variants and
// wraps each one as a Shader ready for pipeline creation. Every source
// carries both entry points, vs_main and fs_main, which are located with a
// lightweight scan instead of a full WGSL parse; bind group and vertex
// layouts are declared explicitly by the code that builds the pipeline.
package shader

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/triangle.wgsl
var triangleSource string

//go:embed assets/banded.wgsl
var bandedSource string

//go:embed assets/texture.wgsl
var textureSource string

//go:embed assets/spin.wgsl
var spinSource string

var (
	// vertexEntryRegex matches the first function following a @vertex attribute.
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches the first function following a @fragment attribute.
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
)

type shaderImpl struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
	module        *wgpu.ShaderModuleDescriptor
}

// Shader is a WGSL source holding one vertex and one fragment entry point.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// VertexEntry returns the vertex stage entry point name.
	//
	// Returns:
	//   - string: the @vertex function name
	VertexEntry() string

	// FragmentEntry returns the fragment stage entry point name.
	//
	// Returns:
	//   - string: the @fragment function name
	FragmentEntry() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shaderImpl{}

// NewShader wraps a WGSL source as a Shader. The source must declare both a
// @vertex and a @fragment entry point; a missing entry point is a programmer
// error and panics.
//
// Parameters:
//   - key: a unique identifier for the shader, used for labels and lookups
//   - source: the complete WGSL source code
//
// Returns:
//   - Shader: a new Shader instance wrapping the source
func NewShader(key, source string) Shader {
	if strings.TrimSpace(source) == "" {
		panic(fmt.Sprintf("shader: %s has empty source", key))
	}
	s := &shaderImpl{
		key:           key,
		source:        source,
		vertexEntry:   parseEntryPoint(source, vertexEntryRegex),
		fragmentEntry: parseEntryPoint(source, fragmentEntryRegex),
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}
	if s.vertexEntry == "" {
		panic(fmt.Sprintf("shader: %s declares no @vertex entry point", key))
	}
	if s.fragmentEntry == "" {
		panic(fmt.Sprintf("shader: %s declares no @fragment entry point", key))
	}
	return s
}

// Triangle returns the per-vertex color shader.
//
// Returns:
//   - Shader: the triangle shader
func Triangle() Shader {
	return NewShader("Triangle Shader", triangleSource)
}

// Banded returns the position-banded color shader.
//
// Returns:
//   - Shader: the banded shader
func Banded() Shader {
	return NewShader("Banded Shader", bandedSource)
}

// Texture returns the sampled-texture shader.
//
// Returns:
//   - Shader: the texture shader
func Texture() Shader {
	return NewShader("Texture Shader", textureSource)
}

// Spin returns the instanced, camera-projected texture shader.
//
// Returns:
//   - Shader: the spin shader
func Spin() Shader {
	return NewShader("Spin Shader", spinSource)
}

func (s *shaderImpl) Key() string {
	return s.key
}

func (s *shaderImpl) Source() string {
	return s.source
}

func (s *shaderImpl) VertexEntry() string {
	return s.vertexEntry
}

func (s *shaderImpl) FragmentEntry() string {
	return s.fragmentEntry
}

func (s *shaderImpl) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

// parseEntryPoint returns the entry point name matched by re, with line
// comments stripped first so commented-out stages are not picked up.
func parseEntryPoint(source string, re *regexp.Regexp) string {
	if match := re.FindStringSubmatch(stripLineComments(source)); match != nil {
		return match[1]
	}
	return ""
}

// stripLineComments removes single-line // comments from WGSL source.
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
