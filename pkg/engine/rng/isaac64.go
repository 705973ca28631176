package rng

const (
	isaacSizeLog = 8
	isaacSize    = 1 << isaacSizeLog
	isaacGolden  = uint64(0x9E3779B97F4A7C13)
)

// isaac64 is the ISAAC64 generator state.
type isaac64 struct {
	n       int
	r       [isaacSize]uint64
	m       [isaacSize]uint64
	a, b, c uint64
}

var isaacShift = [8]uint{9, 9, 23, 15, 14, 20, 17, 14}

func lowerBits(x uint64) uint64 {
	return (x & ((isaacSize - 1) << 3)) >> 3
}

func upperBits(y uint64) uint64 {
	return (y >> (isaacSizeLog + 3)) & (isaacSize - 1)
}

// newISAAC64 seeds a generator from raw seed bytes.
func newISAAC64(seed []byte) *isaac64 {
	ctx := &isaac64{}
	ctx.reseed(seed)
	return ctx
}

func (ctx *isaac64) step(i int, a uint64, half int) uint64 {
	x := ctx.m[i]
	a += ctx.m[i+half]
	y := ctx.m[lowerBits(x)] + a + ctx.b
	ctx.m[i] = y
	ctx.b = ctx.m[upperBits(y)] + x
	ctx.r[i] = ctx.b
	return a
}

func (ctx *isaac64) update() {
	a := ctx.a
	ctx.c++
	ctx.b += ctx.c
	for i := 0; i < isaacSize/2; i += 4 {
		a = ctx.step(i, ^(a ^ a<<21), isaacSize/2)
		a = ctx.step(i+1, a^a>>5, isaacSize/2)
		a = ctx.step(i+2, a^a<<12, isaacSize/2)
		a = ctx.step(i+3, a^a>>33, isaacSize/2)
	}
	for i := isaacSize / 2; i < isaacSize; i += 4 {
		a = ctx.step(i, ^(a ^ a<<21), -isaacSize/2)
		a = ctx.step(i+1, a^a>>5, -isaacSize/2)
		a = ctx.step(i+2, a^a<<12, -isaacSize/2)
		a = ctx.step(i+3, a^a>>33, -isaacSize/2)
	}
	ctx.a = a
	ctx.n = isaacSize
}

func isaacMix(x *[8]uint64) {
	for i := 0; i < 8; i += 2 {
		x[i] -= x[(i+4)&7]
		x[(i+5)&7] ^= x[(i+7)&7] >> isaacShift[i]
		x[(i+7)&7] += x[i]
		j := i + 1
		x[j] -= x[(j+4)&7]
		x[(j+5)&7] ^= x[(j+7)&7] << isaacShift[j]
		x[(j+7)&7] += x[j]
	}
}

func (ctx *isaac64) reseed(seed []byte) {
	if len(seed) > isaacSize*8 {
		seed = seed[:isaacSize*8]
	}
	i := 0
	for ; i < len(seed)>>3; i++ {
		var v uint64
		for k := 7; k >= 0; k-- {
			v = v<<8 | uint64(seed[i<<3|k])
		}
		ctx.r[i] ^= v
	}
	if rest := len(seed) - i<<3; rest > 0 {
		var v uint64
		for k := 0; k < rest; k++ {
			v |= uint64(seed[i<<3|k]) << (k << 3)
		}
		ctx.r[i] ^= v
	}

	var x [8]uint64
	for k := range x {
		x[k] = isaacGolden
	}
	for k := 0; k < 4; k++ {
		isaacMix(&x)
	}
	for i := 0; i < isaacSize; i += 8 {
		for j := 0; j < 8; j++ {
			x[j] += ctx.r[i+j]
		}
		isaacMix(&x)
		copy(ctx.m[i:i+8], x[:])
	}
	for i := 0; i < isaacSize; i += 8 {
		for j := 0; j < 8; j++ {
			x[j] += ctx.m[i+j]
		}
		isaacMix(&x)
		copy(ctx.m[i:i+8], x[:])
	}
	ctx.update()
}

// next returns the next 64-bit output.
func (ctx *isaac64) next() uint64 {
	if ctx.n == 0 {
		ctx.update()
	}
	ctx.n--
	return ctx.r[ctx.n]
}
