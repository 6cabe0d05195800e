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

// sweepInstances stops every unprotected running instance in the report's
// region, folding outcomes into the report.
//
// Enumeration failure aborts the instance sweep for the region with a single
// error; no instances are acted on from a partial listing. Per-instance stop
// failures are recorded and the sweep moves to the next instance, so one
// throttled or stuck instance never shields its neighbors.
func (g *Governor) sweepInstances(ctx context.Context, ec2 aws.EC2Client, policy ProtectionPolicy, report *RegionReport) {
	log := g.Log.WithValues("region", report.Region)

	instances, err := ec2.DescribeRunningInstances(ctx)
	if err != nil {
		log.Error(err, "failed to list running instances")
		report.Errors = append(report.Errors,
			fmt.Sprintf("failed to list running instances in %s: %v", report.Region, err))
		return
	}
	log.V(1).Info("enumerated running instances", "count", len(instances))

	for _, instance := range instances {
		decision := policy.ForInstance(ctx, ec2, instance.InstanceID)
		if decision.Protected {
			g.Metrics.RecordProtectedSkip(metrics.ResourceTypeInstance, decision.Reason)
			if decision.Cause != nil {
				log.V(1).Info("skipping instance, protection check failed",
					"instance_id", instance.InstanceID,
					"cause", decision.Cause.Error())
			} else {
				log.V(1).Info("skipping protected instance",
					"instance_id", instance.InstanceID,
					"reason", decision.Reason)
			}
			continue
		}

		if err := ec2.StopInstance(ctx, instance.InstanceID); err != nil {
			log.Error(err, "failed to stop instance", "instance_id", instance.InstanceID)
			report.Errors = append(report.Errors,
				fmt.Sprintf("failed to stop instance %s in %s: %v", instance.InstanceID, report.Region, err))
			continue
		}

		log.Info("stopped unprotected instance",
			"instance_id", instance.InstanceID,
			"instance_type", instance.InstanceType)
		report.StoppedInstances = append(report.StoppedInstances, entry(instance.InstanceID, report.Region))
		report.stoppedRecords = append(report.stoppedRecords, instance)
	}
}
