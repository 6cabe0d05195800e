// Copyright 2026 AWS Cost Protection Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package governor

import (
	"context"
	"fmt"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
	"github.com/exit0-io/aws-cost-protection/pkg/metrics"
)

// sweepGroups scales every unprotected autoscaling group in the report's
// region down to zero, folding outcomes into the report.
//
// The protection check runs before the capacity check, so a protected group
// at zero capacity counts as a protected skip, not an idempotent no-op.
// MinSize and DesiredCapacity go to zero together; MaxSize is re-sent at its
// current value so the group's ceiling survives the update call.
func (g *Governor) sweepGroups(ctx context.Context, asg aws.AutoScalingClient, policy ProtectionPolicy, report *RegionReport) {
	log := g.Log.WithValues("region", report.Region)

	groups, err := asg.DescribeGroups(ctx)
	if err != nil {
		log.Error(err, "failed to list auto scaling groups")
		report.Errors = append(report.Errors,
			fmt.Sprintf("failed to list auto scaling groups in %s: %v", report.Region, err))
		return
	}
	log.V(1).Info("enumerated auto scaling groups", "count", len(groups))

	for _, group := range groups {
		decision := policy.ForGroup(ctx, asg, group.Name)
		if decision.Protected {
			g.Metrics.RecordProtectedSkip(metrics.ResourceTypeGroup, decision.Reason)
			if decision.Cause != nil {
				log.V(1).Info("skipping group, protection check failed",
					"group", group.Name,
					"cause", decision.Cause.Error())
			} else {
				log.V(1).Info("skipping protected group",
					"group", group.Name,
					"reason", decision.Reason)
			}
			continue
		}

		if group.DesiredCapacity == 0 {
			log.V(1).Info("skipping group already at zero capacity", "group", group.Name)
			continue
		}

		if err := asg.UpdateGroupCapacity(ctx, group.Name, 0, group.MaxSize, 0); err != nil {
			log.Error(err, "failed to scale down auto scaling group", "group", group.Name)
			report.Errors = append(report.Errors,
				fmt.Sprintf("failed to scale down auto scaling group %s in %s: %v", group.Name, report.Region, err))
			continue
		}

		log.Info("scaled down auto scaling group",
			"group", group.Name,
			"previous_desired_capacity", group.DesiredCapacity,
			"max_size", group.MaxSize)
		report.ScaledDownGroups = append(report.ScaledDownGroups, entry(group.Name, report.Region))
	}
}
