package renderer

// Scene shader: per-vertex color, one directional light, linear
// distance fog toward the sky color.
const sceneVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vWorldPos;
out vec3 vNormal;
out vec3 vColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vWorldPos = aPos;
	vNormal = aNormal;
	vColor = aColor;
}
`

const sceneFragmentShader = `
#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;
in vec3 vColor;

uniform vec3 uCameraPos;
uniform vec3 uLightDir;
uniform vec3 uFogColor;
uniform float uFogStart;
uniform float uFogEnd;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -normalize(uLightDir)), 0.0);
	vec3 lit = vColor * (0.45 + 0.55 * diffuse);

	float dist = length(vWorldPos - uCameraPos);
	float fog = clamp((dist - uFogStart) / (uFogEnd - uFogStart), 0.0, 1.0);

	FragColor = vec4(mix(lit, uFogColor, fog), 1.0);
}
`

// Flat shader for the loading overlay: a unit quad placed by a rect
// uniform in normalized device coordinates.
const flatVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;

uniform vec4 uRect; // x, y, width, height in NDC

void main() {
	vec2 pos = uRect.xy + aPos * uRect.zw;
	gl_Position = vec4(pos, 0.0, 1.0);
}
`

const flatFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`
