package app

import (
	"github.com/uesim/tracegraph/internal/registry"
	"github.com/uesim/tracegraph/modules/data_helper"
	"github.com/uesim/tracegraph/modules/demand"
	"github.com/uesim/tracegraph/modules/embodied_energy"
	"github.com/uesim/tracegraph/modules/emissions"
	"github.com/uesim/tracegraph/modules/mobility"
	"github.com/uesim/tracegraph/modules/network_layout"
	"github.com/uesim/tracegraph/modules/operation_costs"
	"github.com/uesim/tracegraph/modules/photovoltaic"
	"github.com/uesim/tracegraph/modules/radiation"
	"github.com/uesim/tracegraph/modules/solar_collector"
)

// coreModules is the definitive list of all script modules that are
// compiled into the tracegraph binary.
var coreModules = []registry.Module{
	&data_helper.Module{},
	&radiation.Module{},
	&demand.Module{},
	&solar_collector.Module{},
	&photovoltaic.Module{},
	&emissions.Module{},
	&embodied_energy.Module{},
	&operation_costs.Module{},
	&mobility.Module{},
	&network_layout.Module{},
}
