package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh vertex shader: interleaved position + color, classic MVP, eye-space
// distance passed on for fog.
const meshVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aColor;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vColor;
out float vDist;

void main() {
    vec4 eye = uView * uModel * vec4(aPos, 1.0);
    gl_Position = uProj * eye;
    vColor = aColor;
    vDist = length(eye.xyz);
}
` + "\x00"

// Mesh fragment shader: vertex color blended into distance fog.
const meshFragSrc = `#version 410 core

uniform vec3 uFogColor;
uniform float uFogDensity;
uniform float uAlpha;

in vec3 vColor;
in float vDist;
out vec4 FragColor;

void main() {
    float fog = clamp(1.0 - exp(-uFogDensity * vDist), 0.0, 1.0);
    FragColor = vec4(mix(vColor, uFogColor, fog), uAlpha);
}
` + "\x00"

// Particle vertex shader: point sprites with perspective size attenuation.
// uPointScale folds the projection and framebuffer height together CPU-side.
const particleVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in float aSize;
layout(location = 2) in float aAlpha;

uniform mat4 uView;
uniform mat4 uProj;
uniform float uPointScale;

out float vAlpha;

void main() {
    vec4 eye = uView * vec4(aPos, 1.0);
    gl_Position = uProj * eye;
    float dist = max(length(eye.xyz), 0.001);
    gl_PointSize = clamp(aSize * uPointScale / dist, 1.0, 220.0);
    vAlpha = aAlpha;
}
` + "\x00"

// Soft round sprite, alpha blended. Uniform color per particle system.
const particleFragSrc = `#version 410 core

uniform vec3 uColor;

in float vAlpha;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0;
    float falloff = clamp(1.0 - dist, 0.0, 1.0);
    FragColor = vec4(uColor, vAlpha * falloff * falloff);
}
` + "\x00"

// Additive variant: color pre-multiplied by coverage, used for engine burn
// and the explosion.
const glowFragSrc = `#version 410 core

uniform vec3 uColor;

in float vAlpha;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0;
    float falloff = clamp(1.0 - dist, 0.0, 1.0);
    falloff = falloff * falloff;
    FragColor = vec4(uColor * vAlpha * falloff, 1.0);
}
` + "\x00"

func compileShader(src string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		msg := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(msg))
		return 0, fmt.Errorf("compile shader: %v", msg)
	}
	return sh, nil
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		msg := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(msg))
		return 0, fmt.Errorf("link program: %v", msg)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}
