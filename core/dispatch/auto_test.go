package dispatch

import (
	"testing"
	"time"

	"github.com/fieldcrew/dispatch/core/model"
)

func TestAutoAssignAllPlacesEverythingWithRoom(t *testing.T) {
	p := prefs()
	p.VehicleCount = 2
	a := NewAllocator(p)
	jobs := []model.Job{
		{ID: "j1", Status: model.StatusPendingSchedule, EstimatedMinutes: 60},
		{ID: "j2", Status: model.StatusPendingSchedule, EstimatedMinutes: 60},
	}
	techs := []model.Technician{tech("t1", nil), tech("t2", nil)}
	res := a.AutoAssignAll(jobs, techs, nil, monday)
	if res.Summary.Assigned != 2 || len(res.Failed) != 0 {
		t.Fatalf("expected 2 placements, got %+v", res.Summary)
	}
}

func TestAutoAssignAllRespectsJobCap(t *testing.T) {
	p := prefs()
	p.VehicleCount = 4
	a := NewAllocator(p)
	var jobs []model.Job
	for _, id := range []string{"j1", "j2", "j3"} {
		jobs = append(jobs, model.Job{ID: id, Status: model.StatusPendingSchedule, EstimatedMinutes: 60})
	}
	techs := []model.Technician{{ID: "solo", MaxJobsPerDay: 2}}
	res := a.AutoAssignAll(jobs, techs, nil, monday)
	if res.Summary.Assigned != 2 {
		t.Fatalf("job cap of 2 should bound placements, got %d", res.Summary.Assigned)
	}
	if len(res.Failed) != 1 || res.Failed[0].JobID != "j3" {
		t.Fatalf("overflow job should fail, got %+v", res.Failed)
	}
	perTech := map[string]int{}
	for _, asg := range res.Successful {
		perTech[asg.TechnicianID]++
	}
	if perTech["solo"] > 2 {
		t.Fatalf("technician exceeded job cap: %d", perTech["solo"])
	}
}

func TestAutoAssignAllRespectsHourBudget(t *testing.T) {
	p := prefs()
	p.VehicleCount = 4
	a := NewAllocator(p)
	jobs := []model.Job{
		{ID: "j1", Status: model.StatusPendingSchedule, EstimatedMinutes: 240},
		{ID: "j2", Status: model.StatusPendingSchedule, EstimatedMinutes: 240},
		{ID: "j3", Status: model.StatusPendingSchedule, EstimatedMinutes: 240},
	}
	techs := []model.Technician{{ID: "solo", MaxHoursPerDay: 8}}
	res := a.AutoAssignAll(jobs, techs, nil, monday)
	total := 0
	for _, asg := range res.Successful {
		for _, j := range jobs {
			if j.ID == asg.JobID {
				total += j.EstimatedMinutes
			}
		}
	}
	if total > 480 {
		t.Fatalf("placed minutes %d exceed the 8 hour budget", total)
	}
	if len(res.Failed) == 0 {
		t.Fatalf("at least one job should fail on the hour budget")
	}
}

func TestAutoAssignAllInputOrderWins(t *testing.T) {
	p := prefs()
	p.VehicleCount = 4
	a := NewAllocator(p)
	first := model.Job{ID: "first", Status: model.StatusPendingSchedule, EstimatedMinutes: 60}
	second := model.Job{ID: "second", Status: model.StatusPendingSchedule, EstimatedMinutes: 60}
	techs := []model.Technician{{ID: "solo", MaxJobsPerDay: 1}}

	res := a.AutoAssignAll([]model.Job{first, second}, techs, nil, monday)
	if len(res.Successful) != 1 || res.Successful[0].JobID != "first" {
		t.Fatalf("earlier job in the input should win the capacity, got %+v", res.Successful)
	}

	res = a.AutoAssignAll([]model.Job{second, first}, techs, nil, monday)
	if len(res.Successful) != 1 || res.Successful[0].JobID != "second" {
		t.Fatalf("reordering the input should change the winner, got %+v", res.Successful)
	}
}

func TestAutoAssignAllCrewCapacityBlocks(t *testing.T) {
	p := prefs()
	p.VehicleCount = 1
	a := NewAllocator(p)
	jobs := []model.Job{
		{ID: "j1", Status: model.StatusPendingSchedule, EstimatedMinutes: 540},
		{ID: "j2", Status: model.StatusPendingSchedule, EstimatedMinutes: 540},
	}
	// Two technicians, one vehicle: the second all-day job has nowhere to go.
	techs := []model.Technician{tech("t1", nil), tech("t2", nil)}
	res := a.AutoAssignAll(jobs, techs, nil, monday)
	if res.Summary.Assigned != 1 {
		t.Fatalf("one vehicle allows one concurrent job, got %d", res.Summary.Assigned)
	}
	if len(res.Failed) != 1 || res.Failed[0].JobID != "j2" {
		t.Fatalf("second job should fail on crew capacity, got %+v", res.Failed)
	}
}

func TestAutoAssignAllPlacementsConsumeCapacity(t *testing.T) {
	p := prefs()
	p.VehicleCount = 4
	a := NewAllocator(p)
	jobs := []model.Job{
		{ID: "j1", Status: model.StatusPendingSchedule, EstimatedMinutes: 60},
		{ID: "j2", Status: model.StatusPendingSchedule, EstimatedMinutes: 60},
	}
	techs := []model.Technician{tech("solo", nil)}
	res := a.AutoAssignAll(jobs, techs, nil, monday)
	if res.Summary.Assigned != 2 {
		t.Fatalf("expected both jobs placed, got %d", res.Summary.Assigned)
	}
	// Second placement must clear the first plus the 30 minute buffer.
	gap := res.Successful[1].Start.Sub(res.Successful[0].Start)
	if gap < 90*time.Minute {
		t.Fatalf("second start %s is inside the first job's buffered window", res.Successful[1].Start)
	}
}
