package render

import (
	"context"
	"errors"
	"sync"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mold"
	"golang.org/x/sync/errgroup"
)

// Block is a slab of a tunnel-like world extracted along the z axis.
type Block struct {
	Z      int
	Offset ms3.Vec
	Radii  ms3.Vec
	Mesh
}

// BlockConfig sets the size and sampling of world blocks. Block z spans
// [z*Length - Length/2, z*Length + Length/2] and 4*Radius in x and y.
type BlockConfig struct {
	Length float32
	Radius float32
	// Resolution is the voxel count along x and y.
	Resolution int
	// ZResolution is the voxel count along z. If zero it is derived from Resolution
	// so voxels are cubes.
	ZResolution int
}

// DefaultBlockConfig returns the block sizing of the cave demo.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		Length:     30,
		Radius:     15,
		Resolution: 80,
	}
}

func (cfg BlockConfig) validate() error {
	if cfg.Length <= 0 || cfg.Radius <= 0 {
		return errors.New("block length and radius must be positive")
	} else if cfg.Resolution < 1 || cfg.ZResolution < 0 {
		return errors.New("invalid block resolution")
	}
	return nil
}

// Region returns the extraction box of block z.
func (cfg BlockConfig) Region(z int) (offset, radii ms3.Vec) {
	offset = ms3.Vec{Z: float32(z) * cfg.Length}
	radii = ms3.Vec{X: 2 * cfg.Radius, Y: 2 * cfg.Radius, Z: cfg.Length / 2}
	return offset, radii
}

// Grid returns the extraction resolution of a block.
func (cfg BlockConfig) Grid() Resolution {
	zres := cfg.ZResolution
	if zres == 0 {
		zres = max(1, int(float32(cfg.Resolution)/cfg.Radius*cfg.Length/4))
	}
	return Resolution{X: cfg.Resolution, Y: cfg.Resolution, Z: zres}
}

// NewBlock extracts block z of m.
func (cfg BlockConfig) NewBlock(m mold.Mold, z int) Block {
	offset, radii := cfg.Region(z)
	v, idx := Extract(offset, radii, cfg.Grid(), m)
	return Block{
		Z:      z,
		Offset: offset,
		Radii:  radii,
		Mesh:   Mesh{Vertices: v, Indices: idx},
	}
}

// GenerateBlocks extracts the blocks zs of m using up to workers goroutines.
// The returned blocks are in the same order as zs. m must be safe for concurrent use.
func GenerateBlocks(ctx context.Context, m mold.Mold, cfg BlockConfig, zs []int, workers int) ([]Block, error) {
	if m == nil {
		return nil, errors.New("nil mold")
	} else if err := cfg.validate(); err != nil {
		return nil, err
	}
	blocks := make([]Block, len(zs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, z := range zs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			blocks[i] = cfg.NewBlock(m, z)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// gctx is always done after Wait, only the caller's context tells of cancellation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// BlockGenerator extracts requested blocks in the background.
type BlockGenerator struct {
	cfg      BlockConfig
	m        mold.Mold
	requests chan int
	g        errgroup.Group

	reqMu  sync.Mutex
	closed bool

	mu    sync.Mutex
	ready []Block
}

// NewBlockGenerator starts workers goroutines extracting blocks of m.
// Call Shutdown to release them.
func NewBlockGenerator(m mold.Mold, cfg BlockConfig, workers int) (*BlockGenerator, error) {
	if m == nil {
		return nil, errors.New("nil mold")
	} else if err := cfg.validate(); err != nil {
		return nil, err
	}
	workers = max(workers, 1)
	bg := &BlockGenerator{
		cfg:      cfg,
		m:        m,
		requests: make(chan int, 4*workers),
	}
	for i := 0; i < workers; i++ {
		bg.g.Go(bg.work)
	}
	return bg, nil
}

func (bg *BlockGenerator) work() error {
	for z := range bg.requests {
		block := bg.cfg.NewBlock(bg.m, z)
		bg.mu.Lock()
		bg.ready = append(bg.ready, block)
		bg.mu.Unlock()
	}
	return nil
}

// Request queues block z for extraction. It blocks while the queue is full and
// returns false if the generator has been shut down.
func (bg *BlockGenerator) Request(z int) bool {
	bg.reqMu.Lock()
	defer bg.reqMu.Unlock()
	if bg.closed {
		return false
	}
	bg.requests <- z
	return true
}

// Receive returns the blocks finished since the last call without blocking.
// Blocks are returned in order of completion.
func (bg *BlockGenerator) Receive() []Block {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	ready := bg.ready
	bg.ready = nil
	return ready
}

// Shutdown stops accepting requests and waits for queued blocks to finish.
// Finished blocks remain available through Receive.
func (bg *BlockGenerator) Shutdown() {
	bg.reqMu.Lock()
	if !bg.closed {
		bg.closed = true
		close(bg.requests)
	}
	bg.reqMu.Unlock()
	bg.g.Wait()
}
