package model_test

import (
	"fmt"

	"netmeta/model"
	"netmeta/network"
)

// Example fits a short chain to a two-study network and shows the
// life-cycle contract: queries become available once Run completes.
func Example() {
	b := network.NewBuilder(network.Rate)
	_ = b.AddStudy("s1", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(12, 100),
		"B": network.Dichotomous(20, 100),
	})
	_ = b.AddStudy("s2", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(10, 90),
		"B": network.Dichotomous(19, 95),
	})
	n, err := b.Build()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	m, err := model.New(n, model.WithSeed(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = m.SetBurnInIterations(500)
	_ = m.SetSimulationIterations(500)
	if err := m.Run(nil); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(m.Phase(), m.IsReady())
	// Output: ready true
}
