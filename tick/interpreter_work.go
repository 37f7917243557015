package tick

import "github.com/jslade/pro-bots/sched"

// interpreterWorkTag marks the self-rescheduling scheduler-drain item so
// CancelWhere can target it specifically if a host ever needs to tear one
// down (e.g. a per-world processor being decommissioned).
type interpreterWorkTag struct{}

// ScheduleInterpreterWork installs the work item that drains sch one slice
// per tick: it calls sch.RunOne() and, while sch still reports runnable
// contexts, re-queues itself for the very next tick so script execution
// never starves behind a fixed scheduling priority.
func ScheduleInterpreterWork(p *Processor, sch *sched.Scheduler) {
	var step WorkFunc
	step = func() error {
		sch.RunOne()
		if sch.Runnable() > 0 {
			p.AddWork(step, 1, 0, false, interpreterWorkTag{})
		}
		return nil
	}
	p.AddWork(step, 0, 0, false, interpreterWorkTag{})
}
