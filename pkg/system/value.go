package system

// Params carries the runtime parameters a Hamiltonian value may depend on,
// keyed by name (e.g. "phi" for a magnetic flux in units of the flux
// quantum). A nil Params is valid and means "no parameters".
type Params map[string]float64

// Get returns the named parameter, or 0 if absent.
func (p Params) Get(name string) float64 {
	if p == nil {
		return 0
	}
	return p[name]
}

// Value is an onsite energy or hopping amplitude, evaluated at given
// parameters. Values returned for the same Params must be identical between
// calls; the solver evaluates them once per parameter point.
type Value func(p Params) complex128

// Const wraps a fixed complex amplitude as a Value.
func Const(c complex128) Value {
	return func(Params) complex128 { return c }
}

// Real wraps a fixed real amplitude as a Value.
func Real(v float64) Value {
	return Const(complex(v, 0))
}
