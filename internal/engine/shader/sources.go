package shader

// PetalVertex transforms petal vertices by the per-petal model matrix and
// passes world-space normals to the fragment stage.
const PetalVertex = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	// Petals are scaled uniformly, so the model matrix keeps normals perpendicular.
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProjection * uView * world;
}
`

// PetalFragment is two-sided Lambert shading plus ambient.
const PetalFragment = `
#version 410 core

in vec3 vNormal;
in vec3 vWorldPos;

uniform vec3 uColor;
uniform vec3 uLightDir;
uniform vec3 uCameraPos;
uniform float uAmbient;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	if (dot(n, uCameraPos - vWorldPos) < 0.0) {
		n = -n;
	}
	float diffuse = max(dot(n, normalize(-uLightDir)), 0.0);
	vec3 color = uColor * (uAmbient + (1.0 - uAmbient) * diffuse);
	FragColor = vec4(color, 1.0);
}
`

// LineVertex draws untransformed world-space lines.
const LineVertex = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uView;
uniform mat4 uProjection;

void main() {
	gl_Position = uProjection * uView * vec4(aPos, 1.0);
}
`

// LineFragment fills lines with a flat color.
const LineFragment = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`
