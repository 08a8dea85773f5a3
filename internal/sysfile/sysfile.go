// Package sysfile reads and writes LTI system descriptions in YAML, TOML
// or JSON.
//
// A file describes one system:
//
//	kind: zpk        # tf, zpk or rpk
//	domain: s        # s (analog, default) or z (discrete, powers of z^-1)
//	zeros: [-1, -1]
//	poles: [[-0.5, 0.8], [-0.5, -0.8]]
//	gain: 2
//
// Transfer functions use b and a, residue expansions use residues, poles
// and k. Complex entries are written as [re, im].
package sysfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/dsp/lti/residue"
	"github.com/ZOwl/signal-processing/dsp/poly"
)

// Errors returned while reading system files.
var (
	ErrMalformed     = errors.New("sysfile: malformed system description")
	ErrUnknownKind   = errors.New("sysfile: unknown system kind")
	ErrUnknownDomain = errors.New("sysfile: unknown domain")
	ErrUnknownFormat = errors.New("sysfile: unknown file format")
)

// Kind names the representation stored in a file.
type Kind string

// System kinds.
const (
	KindTf  Kind = "tf"
	KindZpk Kind = "zpk"
	KindRpk Kind = "rpk"
)

// Domain selects the transform variable.
type Domain string

// Domains.
const (
	DomainS Domain = "s"
	DomainZ Domain = "z"
)

// Document is a decoded system description.
type Document struct {
	Kind     Kind    `yaml:"kind" toml:"kind" json:"kind"`
	Domain   Domain  `yaml:"domain" toml:"domain" json:"domain"`
	B        []Value `yaml:"b" toml:"b" json:"b"`
	A        []Value `yaml:"a" toml:"a" json:"a"`
	Zeros    []Value `yaml:"zeros" toml:"zeros" json:"zeros"`
	Poles    []Value `yaml:"poles" toml:"poles" json:"poles"`
	Gain     *Value  `yaml:"gain" toml:"gain" json:"gain"`
	Residues []Value `yaml:"residues" toml:"residues" json:"residues"`
	K        []Value `yaml:"k" toml:"k" json:"k"`
}

// Validate normalizes Kind and Domain and checks that the fields required by
// Kind are present.
func (d *Document) Validate() error {
	d.Kind = Kind(strings.ToLower(strings.TrimSpace(string(d.Kind))))
	d.Domain = Domain(strings.ToLower(strings.TrimSpace(string(d.Domain))))

	switch d.Domain {
	case "":
		d.Domain = DomainS
	case DomainS, DomainZ:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDomain, d.Domain)
	}

	switch d.Kind {
	case KindTf:
		if len(d.A) == 0 {
			return fmt.Errorf("%w: tf needs a denominator", ErrMalformed)
		}
	case KindZpk:
		if len(d.Poles) == 0 && len(d.Zeros) == 0 && d.Gain == nil {
			return fmt.Errorf("%w: zpk has no zeros, poles or gain", ErrMalformed)
		}
	case KindRpk:
		if len(d.Residues) != len(d.Poles) {
			return fmt.Errorf("%w: %d residues for %d poles", ErrMalformed, len(d.Residues), len(d.Poles))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}

	return nil
}

// Tf returns the system as a transfer function. Residue expansions are
// rebuilt with [residue.Invert] or [residue.InvertZ] depending on the
// domain.
func (d Document) Tf() (lti.Tf, error) {
	switch d.Kind {
	case KindTf:
		return lti.Tf{B: poly.New(toComplex(d.B)...), A: poly.New(toComplex(d.A)...)}, nil
	case KindZpk:
		zpk, err := d.Zpk()
		if err != nil {
			return lti.Tf{}, err
		}
		if d.Domain == DomainZ {
			return zpkToTfZ(zpk), nil
		}
		return zpk.ToTf(), nil
	case KindRpk:
		rpk, err := d.Rpk()
		if err != nil {
			return lti.Tf{}, err
		}
		if d.Domain == DomainZ {
			return residue.InvertZ(rpk)
		}
		return residue.Invert(rpk), nil
	default:
		return lti.Tf{}, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
}

// Zpk returns the system in zero-pole-gain form. Zeros and poles of
// discrete systems are roots in z.
func (d Document) Zpk() (lti.Zpk, error) {
	if d.Kind == KindZpk {
		gain := complex128(1)
		if d.Gain != nil {
			gain = complex128(*d.Gain)
		}
		return lti.Zpk{Zeros: toComplex(d.Zeros), Poles: toComplex(d.Poles), Gain: gain}, nil
	}

	tf, err := d.Tf()
	if err != nil {
		return lti.Zpk{}, err
	}
	if d.Domain == DomainZ {
		return tfToZpkZ(tf)
	}
	return tf.ToZpk()
}

// Rpk returns the residue expansion stored in an rpk document.
func (d Document) Rpk() (lti.Rpk, error) {
	if d.Kind != KindRpk {
		return lti.Rpk{}, fmt.Errorf("%w: %q is not an rpk document", ErrUnknownKind, d.Kind)
	}
	if len(d.Residues) != len(d.Poles) {
		return lti.Rpk{}, fmt.Errorf("%w: %d residues for %d poles", ErrMalformed, len(d.Residues), len(d.Poles))
	}

	terms := make([]lti.Term, len(d.Poles))
	for i := range terms {
		terms[i] = lti.Term{Residue: complex128(d.Residues[i]), Pole: complex128(d.Poles[i])}
	}
	return lti.Rpk{Terms: terms, K: poly.New(toComplex(d.K)...)}, nil
}

// FromTf returns a tf document.
func FromTf(tf lti.Tf, domain Domain) Document {
	return Document{Kind: KindTf, Domain: domain, B: toValues(tf.B), A: toValues(tf.A)}
}

// FromZpk returns a zpk document.
func FromZpk(zpk lti.Zpk, domain Domain) Document {
	gain := Value(zpk.Gain)
	return Document{
		Kind:   KindZpk,
		Domain: domain,
		Zeros:  toValues(zpk.Zeros),
		Poles:  toValues(zpk.Poles),
		Gain:   &gain,
	}
}

// FromRpk returns an rpk document.
func FromRpk(rpk lti.Rpk, domain Domain) Document {
	d := Document{Kind: KindRpk, Domain: domain, K: toValues(rpk.K)}
	for _, t := range rpk.Terms {
		d.Residues = append(d.Residues, Value(t.Residue))
		d.Poles = append(d.Poles, Value(t.Pole))
	}
	return d
}

// A discrete zpk with roots in z, P poles and Z zeros, has the transfer
// function g z^(P-Z) prod(1 - z_i z^-1) / prod(1 - p_i z^-1).
func zpkToTfZ(zpk lti.Zpk) lti.Tf {
	b := poly.FromRoots(zpk.Zeros).Scale(zpk.Gain)
	a := poly.FromRoots(zpk.Poles)

	// Align both polynomials on the highest power of z before reading them
	// as ascending powers of z^-1.
	if n := len(a) - len(b); n > 0 {
		b = append(make(poly.Polynomial, n), b...)
	} else if n < 0 {
		a = append(make(poly.Polynomial, -n), a...)
	}

	tf := lti.Tf{B: b, A: a}
	if imag(zpk.Gain) == 0 && tf.IsReal(1e-9) {
		tf.B, tf.A = tf.B.TruncateIm(), tf.A.TruncateIm()
	}
	return tf
}

func tfToZpkZ(tf lti.Tf) (lti.Zpk, error) {
	// Pad to equal length so that both read as polynomials in z.
	b, a := tf.B, tf.A
	if n := len(a) - len(b); n > 0 {
		b = append(b.Clone(), make(poly.Polynomial, n)...)
	} else if n < 0 {
		a = append(a.Clone(), make(poly.Polynomial, -n)...)
	}
	return lti.Tf{B: b, A: a}.ToZpk()
}
