package analyzer

import (
	"fmt"
)

// SignatureSet maps a port endpoint key to its VLAN signature
type SignatureSet map[string]VlanSignature

// Add records the signature of a port
func (s SignatureSet) Add(ref PortRef, sig VlanSignature) {
	s[endpointKey(ref)] = sig
}

// Get returns the signature of a port
func (s SignatureSet) Get(ref PortRef) (VlanSignature, bool) {
	sig, ok := s[endpointKey(ref)]
	return sig, ok
}

// DetectMismatches compares both sides of every trunk link and reports VLANs
// carried by only one side. Each mismatched VLAN is graded by majority vote:
// the share of all links on which at least one side carries it.
func DetectMismatches(links []TrunkLink, signatures SignatureSet, universe Universe) []MismatchIssue {
	type pair struct {
		link TrunkLink
		a, b VlanSignature
	}

	pairs := make([]pair, 0, len(links))
	for _, l := range links {
		a, okA := signatures.Get(l.A)
		b, okB := signatures.Get(l.B)
		if !okA || !okB {
			continue
		}
		pairs = append(pairs, pair{link: l, a: a, b: b})
	}
	if len(pairs) == 0 {
		return nil
	}

	presence := make(map[string]int, universe.Len())
	for _, p := range pairs {
		for _, n := range universe.networks {
			if p.a.Contains(n.ID) || p.b.Contains(n.ID) {
				presence[n.ID]++
			}
		}
	}
	total := len(pairs)

	var issues []MismatchIssue
	for _, p := range pairs {
		var mismatches []VlanMismatch
		for _, n := range universe.networks {
			inA, inB := p.a.Contains(n.ID), p.b.Contains(n.ID)
			if inA == inB {
				continue
			}

			missingSide, missing, present := SideB, p.link.B, p.link.A
			if !inA {
				missingSide, missing, present = SideA, p.link.A, p.link.B
			}

			ref := universe.Ref(n.ID)
			mismatches = append(mismatches, VlanMismatch{
				Network:       ref,
				MissingOn:     missingSide,
				MissingDevice: missing.DeviceName,
				TrunkShare:    float64(presence[n.ID]) / float64(total),
				Confidence:    majorityGrade(presence[n.ID], total),
				Recommendation: fmt.Sprintf("Allow %s (VLAN %d) on %s [%s] to match %s [%s]",
					ref.Name, ref.VlanTag, missing.DeviceName, missing.PortName, present.DeviceName, present.PortName),
			})
		}
		if len(mismatches) == 0 {
			continue
		}

		confidence := ConfidenceLow
		for _, m := range mismatches {
			if m.Confidence.rank() > confidence.rank() {
				confidence = m.Confidence
			}
		}

		issues = append(issues, MismatchIssue{
			ID:         findingID("mismatch", p.link.Key()),
			Link:       p.link,
			Mismatches: mismatches,
			Confidence: confidence,
		})
	}

	return issues
}

// majorityGrade grades a VLAN present on count of total trunk links
func majorityGrade(count, total int) Confidence {
	switch {
	case 2*count > total:
		return ConfidenceHigh
	case 2*count == total:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
