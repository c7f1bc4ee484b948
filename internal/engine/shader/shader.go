// Package shader compiles GLSL sources into linked programs.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked vertex/fragment shader pair.
type Program struct {
	id uint32
}

// Compile builds and links a program from vertex and fragment
// sources.
func Compile(vertexSrc, fragmentSrc string) (*Program, error) {
	stages := []struct {
		src  string
		kind uint32
		name string
	}{
		{vertexSrc, gl.VERTEX_SHADER, "vertex"},
		{fragmentSrc, gl.FRAGMENT_SHADER, "fragment"},
	}

	program := gl.CreateProgram()
	for _, stage := range stages {
		id, err := compileStage(stage.src, stage.kind, stage.name)
		if err != nil {
			gl.DeleteProgram(program)
			return nil, err
		}
		gl.AttachShader(program, id)
		// Flagged for deletion now, freed with the program.
		gl.DeleteShader(id)
	}

	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("link: %s", string(log))
	}

	return &Program{id: program}, nil
}

// Use binds the program for subsequent draw calls.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Delete frees the program object.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Uniform returns the location of a required uniform, panicking when
// the name is not active in the program.
func (p *Program) Uniform(name string) int32 {
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, p.id))
	}
	return loc
}

// compileStage compiles a single shader stage.
func compileStage(source string, kind uint32, name string) (uint32, error) {
	id := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetShaderInfoLog(id, logLen, nil, &log[0])
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return id, nil
}
