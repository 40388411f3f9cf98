package render

// All shader sources target GLSL 410, matching the core 4.1 context.

const pointVertexShader = `
	#version 410
	in vec3 vp;
	uniform mat4 mvp;
	uniform float pointSize;
	void main() {
		gl_Position = mvp * vec4(vp, 1.0);
		gl_PointSize = pointSize / max(gl_Position.w, 0.1);
	}
` + "\x00"

const pointFragmentShader = `
	#version 410
	uniform vec3 color;
	uniform float opacity;
	out vec4 frag_colour;
	void main() {
		// Round sprite with a soft edge.
		vec2 d = gl_PointCoord - vec2(0.5);
		float r2 = dot(d, d);
		if (r2 > 0.25) {
			discard;
		}
		float edge = 1.0 - smoothstep(0.15, 0.25, r2);
		frag_colour = vec4(color, opacity * edge);
	}
` + "\x00"

const meshVertexShader = `
	#version 410
	in vec3 vp;
	uniform mat4 mvp;
	uniform mat4 model;
	out vec3 worldPos;
	void main() {
		worldPos = (model * vec4(vp, 1.0)).xyz;
		gl_Position = mvp * vec4(vp, 1.0);
	}
` + "\x00"

// Flat normals come from screen-space derivatives, so position-only geometry
// still shades. The environment map is sampled equirectangularly along the
// reflection vector.
const meshFragmentShader = `
	#version 410
	in vec3 worldPos;
	uniform vec3 cameraPos;
	uniform vec3 baseColor;
	uniform float opacity;
	uniform sampler2D envMap;
	uniform float useEnvMap;
	out vec4 frag_colour;

	const float PI = 3.14159265359;

	vec3 sampleEnv(vec3 dir) {
		vec2 uv = vec2(atan(dir.z, dir.x) / (2.0 * PI) + 0.5, acos(clamp(dir.y, -1.0, 1.0)) / PI);
		return texture(envMap, uv).rgb;
	}

	void main() {
		vec3 normal = normalize(cross(dFdx(worldPos), dFdy(worldPos)));
		vec3 view = normalize(cameraPos - worldPos);
		if (dot(normal, view) < 0.0) {
			normal = -normal;
		}

		float fresnel = pow(1.0 - max(dot(normal, view), 0.0), 3.0);
		vec3 env = vec3(0.4);
		if (useEnvMap > 0.5) {
			env = sampleEnv(reflect(-view, normal));
		}

		vec3 colour = mix(baseColor, env, 0.35 + 0.5 * fresnel);
		colour += fresnel * 0.6;
		frag_colour = vec4(colour, opacity);
	}
` + "\x00"

const quadVertexShader = `
	#version 410
	in vec2 vp;
	out vec2 uv;
	void main() {
		uv = vp * 0.5 + 0.5;
		gl_Position = vec4(vp, 0.0, 1.0);
	}
` + "\x00"

const brightFragmentShader = `
	#version 410
	in vec2 uv;
	uniform sampler2D scene;
	uniform float threshold;
	out vec4 frag_colour;
	void main() {
		vec3 c = texture(scene, uv).rgb;
		float luma = dot(c, vec3(0.2126, 0.7152, 0.0722));
		frag_colour = vec4(c * step(threshold, luma), 1.0);
	}
` + "\x00"

const blurFragmentShader = `
	#version 410
	in vec2 uv;
	uniform sampler2D src;
	uniform vec2 direction; // one texel step along the blur axis
	out vec4 frag_colour;
	void main() {
		float weights[5] = float[](0.227027, 0.194595, 0.121622, 0.054054, 0.016216);
		vec3 sum = texture(src, uv).rgb * weights[0];
		for (int i = 1; i < 5; i++) {
			sum += texture(src, uv + direction * float(i)).rgb * weights[i];
			sum += texture(src, uv - direction * float(i)).rgb * weights[i];
		}
		frag_colour = vec4(sum, 1.0);
	}
` + "\x00"

const compositeFragmentShader = `
	#version 410
	in vec2 uv;
	uniform sampler2D scene;
	uniform sampler2D bloom;
	uniform float bloomStrength;
	out vec4 frag_colour;
	void main() {
		vec3 c = texture(scene, uv).rgb + texture(bloom, uv).rgb * bloomStrength;
		// Reinhard keeps the additive glow from clipping.
		frag_colour = vec4(c / (c + vec3(1.0)), 1.0);
	}
` + "\x00"
