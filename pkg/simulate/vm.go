package simulate

// vm is one running instance inside a replica's per-type pool. tk holds the
// id of the task currently occupying it, or -1 when idle and awaiting
// reaping, mirroring the reference's VM.tk NULL-sentinel.
type vm struct {
	typ      int
	lifeTime float64
	tk       int
}

const idleVM = -1

func (v *vm) idle() bool { return v.tk == idleVM }
