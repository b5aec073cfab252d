package services

import (
	"context"
	"testing"
	"time"

	"github.com/mediqueue/backend/internal/adapters/memory"
	"github.com/mediqueue/backend/internal/adapters/providers/geolocation"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMonitorFixture(bus providers.EventBus) (*OpenStatusMonitor, *time.Time) {
	facilities := NewFacilityService(
		memory.NewFacilityRepository([]*entities.Facility{
			{ID: "p1", Name: "MediCare Pharmacy", Kind: entities.FacilityKindPharmacy, OperatingHours: "09:00-18:00", IsActive: true},
			{ID: "p2", Name: "Night Owl", Kind: entities.FacilityKindPharmacy, OperatingHours: "22:00-06:00", IsActive: true},
			{ID: "h1", Name: "City General Hospital", Kind: entities.FacilityKindHospital, IsActive: true},
		}),
		nil,
		geolocation.NewMockGeolocationProvider(),
		time.UTC,
	)
	clock := time.Date(2024, time.July, 15, 8, 59, 0, 0, time.UTC)
	monitor := NewOpenStatusMonitor(facilities, bus, nil, "* * * * *")
	monitor.now = func() time.Time { return clock }
	return monitor, &clock
}

func TestOpenStatusMonitor_FirstTickOnlyRecords(t *testing.T) {
	bus := new(MockEventBus)
	monitor, _ := newMonitorFixture(bus)

	events, err := monitor.Tick(context.Background())

	require.NoError(t, err)
	assert.Empty(t, events)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpenStatusMonitor_PublishesTransitions(t *testing.T) {
	// Arrange
	bus := new(MockEventBus)
	monitor, clock := newMonitorFixture(bus)
	bus.On("Publish", mock.Anything, providers.EventChannelFacilityUpdates, mock.AnythingOfType("*entities.FacilityEvent")).Return(nil)

	_, err := monitor.Tick(context.Background())
	require.NoError(t, err)

	// Act
	*clock = time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC)
	events, err := monitor.Tick(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "p1", events[0].FacilityID)
	assert.Equal(t, entities.FacilityEventTypeOpenStatusChange, events[0].EventType)
	assert.Equal(t, true, events[0].ChangedFields["is_open"])

	again, err := monitor.Tick(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again)
	bus.AssertNumberOfCalls(t, "Publish", 1)
}

func TestOpenStatusMonitor_StartRejectsBadSchedule(t *testing.T) {
	monitor, _ := newMonitorFixture(new(MockEventBus))
	monitor.spec = "every so often"

	assert.Error(t, monitor.Start())
	monitor.Stop()
}

func TestOpenStatusMonitor_MinuteScheduleTicksOnTheMinute(t *testing.T) {
	monitor, _ := newMonitorFixture(new(MockEventBus))

	schedule, err := cron.ParseStandard(monitor.spec)
	require.NoError(t, err)

	next := schedule.Next(time.Date(2024, time.July, 15, 8, 59, 37, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC), next)

	require.NoError(t, monitor.Start())
	monitor.Stop()
}
