// Command shaderdemo composes a small shader chain and prints the result.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/shader"
)

func main() {
	var (
		id      = flag.Int("id", 0, "shader namespace id (0-255)")
		frame   = flag.Int("frame", 0, "frame index for temporal effects")
		dynamic = flag.Bool("dynamic", false, "demote constants to dynamic variables")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		shader.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	sh := shader.New(&shader.Params{
		ID:               uint8(*id),
		Index:            uint8(*frame),
		DynamicConstants: *dynamic,
	})

	decode(sh)
	deband(sh)
	write(sh)

	res := sh.Finalize()
	if res == nil {
		log.Fatal("shader composition failed")
	}

	fmt.Printf("// steps: %s\n", res.Description)
	fmt.Printf("// signature: %s -> %s\n", res.Input, res.Output)
	fmt.Print(res.GLSL)
}

// decode produces a color from nothing, applying an inverse gamma curve.
func decode(sh *shader.Shader) {
	if !sh.Require(shader.SigNone) {
		return
	}
	sh.Describe("color decoding")

	gamma := sh.Var(shader.Variable{
		Var:  shader.VarFloat("gamma"),
		Data: floatBytes(2.2),
	})
	sh.Appendf("color = vec4(pow(vec3(0.5), vec3(%s)), 1.0);\n", gamma)
	sh.SetOutput(shader.SigColor)
}

// deband perturbs the color with a cheap hash, seeded by the frame index.
func deband(sh *shader.Shader) {
	if !sh.Require(shader.SigColor) {
		return
	}
	sh.Describe("debanding")

	seed := sh.Const(shader.Constant{
		Name: "seed",
		Type: shader.TypeUint,
		Data: uintBytes(uint32(sh.Index())),
	})
	tmp := sh.Fresh("noise")
	sh.Appendf("float %s = fract(sin(float(%s) * 12.9898) * 43758.5453);\n", tmp, seed)
	sh.Appendf("color.rgb += vec3(%s / 255.0);\n", tmp)
	sh.SetOutput(shader.SigColor)
}

// write consumes the color, storing it through an image descriptor.
func write(sh *shader.Shader) {
	if !sh.Require(shader.SigColor) {
		return
	}
	sh.Describe("output")

	img := sh.Desc(shader.Descriptor{
		Name:   "out_img",
		Type:   shader.DescStorageImage,
		Stages: gputypes.ShaderStageFragment,
		Memory: shader.MemoryCoherent,
	})
	sh.Appendf("imageStore(%s, ivec2(gl_FragCoord.xy), color);\n", img)
	sh.SetOutput(shader.SigNone)
}

func floatBytes(f float32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
	return buf
}

func uintBytes(u uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, u)
	return buf
}
