// Package seed holds the reference data loaded into the in-memory
// repositories and written to Postgres by cmd/seed.
package seed

import (
	"fmt"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/hours"
)

const placeholderImage = "https://placehold.co/600x400.png"

// Demo identities used by seeded appointments and cmd/token
const (
	DemoPatientID   = "patient-demo"
	DemoPatientName = "Demo Patient"
	DemoDoctorID    = "dr_smith_cardio"
	DemoAdminID     = "admin-demo"
)

// TimeSlots are the appointment times offered on the booking form
var TimeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM",
}

// BookingDepartmentIDs lists the booking departments in display order
var BookingDepartmentIDs = []string{"cardiology", "pediatrics", "neurology", "orthopedics", "general"}

type town struct {
	city string
	lat  float64
	lon  float64
}

var (
	anytown     = town{city: "Anytown", lat: 40.7128, lon: -74.0060}
	suburbia    = town{city: "Suburbia", lat: 40.8007, lon: -73.9497}
	metropolis  = town{city: "Metropolis", lat: 40.7506, lon: -73.9971}
	greenValley = town{city: "Green Valley", lat: 40.6437, lon: -74.1018}
)

func facility(id, name string, kind entities.FacilityKind, street string, t town, zip, phone, hoursSpec string, services []string, offset float64) *entities.Facility {
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &entities.Facility{
		ID:   id,
		Name: name,
		Kind: kind,
		Address: entities.Address{
			Street:  street,
			City:    t.city,
			ZipCode: zip,
			Country: "USA",
		},
		Location:       entities.Location{Latitude: t.lat + offset, Longitude: t.lon - offset},
		PhoneNumber:    phone,
		OperatingHours: hoursSpec,
		Services:       services,
		ImageURL:       placeholderImage,
		IsActive:       true,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

// Facilities returns the seeded hospitals and pharmacies
func Facilities() []*entities.Facility {
	return []*entities.Facility{
		facility("h1", "City General Hospital", entities.FacilityKindHospital, "123 Main St", anytown, "12345", "555-0101", "",
			[]string{"General Medicine", "Cardiology", "Pediatrics"}, 0),
		facility("h2", "Suburb Community Clinic", entities.FacilityKindHospital, "456 Oak Ave", suburbia, "67890", "555-0102", "",
			[]string{"General Medicine", "Orthopedics"}, 0),
		facility("h3", "Metropolis Health Center", entities.FacilityKindHospital, "789 Pine Rd", metropolis, "10001", "555-0103", "",
			[]string{"Neurology", "Cardiology", "Oncology"}, 0),
		facility("h4", "Anytown Westside Hospital", entities.FacilityKindHospital, "321 Elm St", anytown, "12346", "555-0104", "",
			[]string{"General Medicine", "Pediatrics", "Neurology", "Emergency Care"}, 0.012),
		facility("h5", "Green Valley Medical", entities.FacilityKindHospital, "101 River Rd", greenValley, "54321", "555-0105", "",
			[]string{"General Medicine", "Dermatology"}, 0),
		facility("p1", "MediCare Pharmacy", entities.FacilityKindPharmacy, "10 Health Road", anytown, "12345", "555-0201", "08:00-20:00",
			[]string{"Prescription Refills", "Vaccinations"}, 0.004),
		facility("p2", "Wellness Drug Store", entities.FacilityKindPharmacy, "25 Life Ave", suburbia, "67890", "555-0202", "09:00-19:00",
			[]string{"Over-the-counter", "Consultations"}, 0.004),
		facility("p3", "City Central Chemists", entities.FacilityKindPharmacy, "300 Cure Blvd", metropolis, "10001", "555-0203", "00:00-23:59",
			[]string{"24/7 Service", "Emergency Supply"}, 0.004),
		facility("p4", "Anytown Community Pharmacy", entities.FacilityKindPharmacy, "5 Remedy Lane", anytown, "12346", "555-0204", "09:00-18:00",
			[]string{"Prescriptions", "Health Checks"}, 0.008),
		facility("p5", "Valley Green Pharmacy", entities.FacilityKindPharmacy, "7 Pill Street", greenValley, "54321", "555-0205", "10:00-22:00",
			[]string{"Online Orders", "Delivery"}, 0.004),
	}
}

// Validate rejects seed facilities whose operating hours cannot be parsed
func Validate(facilities []*entities.Facility) error {
	for _, f := range facilities {
		if f.Kind == entities.FacilityKindPharmacy || f.OperatingHours != "" {
			if err := hours.Validate(f.OperatingHours); err != nil {
				return fmt.Errorf("facility %s: %w", f.ID, err)
			}
		}
	}
	return nil
}

// Wards returns the seeded inpatient wards
func Wards() []*entities.Ward {
	now := time.Now().UTC()
	return []*entities.Ward{
		{ID: "icu", Name: "ICU", Unit: entities.BedUnitBeds, Total: 20, Occupied: 18, UpdatedAt: now},
		{ID: "general-male", Name: "General Ward (Male)", Unit: entities.BedUnitBeds, Total: 50, Occupied: 35, UpdatedAt: now},
		{ID: "general-female", Name: "General Ward (Female)", Unit: entities.BedUnitBeds, Total: 50, Occupied: 42, UpdatedAt: now},
		{ID: "pediatric", Name: "Pediatric Ward", Unit: entities.BedUnitCots, Total: 30, Occupied: 15, UpdatedAt: now},
		{ID: "maternity", Name: "Maternity Ward", Unit: entities.BedUnitBeds, Total: 25, Occupied: 20, UpdatedAt: now},
	}
}

// Departments returns the clinical departments. IDs double as booking
// department identifiers.
func Departments() []*entities.Department {
	return []*entities.Department{
		{ID: "cardiology", Name: "Cardiology", Head: "Dr. Smith", DoctorCount: 5, Capacity: 20},
		{ID: "pediatrics", Name: "Pediatrics", Head: "Dr. Jones", DoctorCount: 3, Capacity: 15},
		{ID: "neurology", Name: "Neurology", Head: "Dr. Lee", DoctorCount: 4, Capacity: 18},
		{ID: "orthopedics", Name: "Orthopedics", Head: "Dr. Brown", DoctorCount: 6, Capacity: 25},
		{ID: "general", Name: "General Medicine", Head: "Dr. Green", DoctorCount: 2, Capacity: 30},
	}
}

// Doctors returns the medical staff roster
func Doctors() []*entities.Doctor {
	return []*entities.Doctor{
		{ID: "dr_smith_cardio", Name: "Dr. Smith", Specialization: "Cardiology", DepartmentID: "cardiology", Status: entities.DoctorStatusActive},
		{ID: "dr_jones_cardio", Name: "Dr. Jones", Specialization: "Cardiology", DepartmentID: "cardiology", Status: entities.DoctorStatusActive},
		{ID: "dr_lee_peds", Name: "Dr. Lee", Specialization: "Pediatrics", DepartmentID: "pediatrics", Status: entities.DoctorStatusActive},
		{ID: "dr_davis_peds", Name: "Dr. Davis", Specialization: "Pediatrics", DepartmentID: "pediatrics", Status: entities.DoctorStatusActive},
		{ID: "dr_white_neuro", Name: "Dr. White", Specialization: "Neurology", DepartmentID: "neurology", Status: entities.DoctorStatusActive},
		{ID: "dr_brown_ortho", Name: "Dr. Brown", Specialization: "Orthopedics", DepartmentID: "orthopedics", Status: entities.DoctorStatusActive},
		{ID: "dr_green_general", Name: "Dr. Green", Specialization: "General Medicine", DepartmentID: "general", Status: entities.DoctorStatusActive},
		{ID: "dr_emily_carter", Name: "Dr. Emily Carter", Specialization: "Cardiology", DepartmentID: "cardiology", Status: entities.DoctorStatusActive},
		{ID: "dr_johnathan_lee", Name: "Dr. Johnathan Lee", Specialization: "Pediatrics", DepartmentID: "pediatrics", Status: entities.DoctorStatusActive},
		{ID: "dr_sarah_green", Name: "Dr. Sarah Green", Specialization: "Neurology", DepartmentID: "neurology", Status: entities.DoctorStatusOnLeave},
		{ID: "dr_michael_brown", Name: "Dr. Michael Brown", Specialization: "Orthopedics", DepartmentID: "orthopedics", Status: entities.DoctorStatusActive},
	}
}

// Admissions returns the seeded inpatient admissions
func Admissions() []*entities.Admission {
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }
	return []*entities.Admission{
		{ID: "ADM001", PatientName: "John Doe", Department: "Cardiology", BedNumber: "C-101", AdmissionDate: day(time.July, 15), Status: entities.AdmissionStatusAdmitted},
		{ID: "ADM002", PatientName: "Jane Smith", Department: "Neurology", BedNumber: "N-205", AdmissionDate: day(time.July, 20), Status: entities.AdmissionStatusAdmitted},
		{ID: "ADM003", PatientName: "Robert Brown", Department: "Orthopedics", BedNumber: "O-302", AdmissionDate: day(time.June, 10), Status: entities.AdmissionStatusDischarged},
		{ID: "ADM004", PatientName: "Emily White", Department: "Pediatrics", BedNumber: "P-101", AdmissionDate: day(time.July, 22), Status: entities.AdmissionStatusAdmitted},
		{ID: "ADM005", PatientName: "Michael Green", Department: "General Ward", BedNumber: "GW-A12", AdmissionDate: day(time.May, 1), Status: entities.AdmissionStatusDischarged},
	}
}

// Ambulances returns the seeded ambulance fleet
func Ambulances() []*entities.Ambulance {
	return []*entities.Ambulance{
		{ID: "AMB001", VehicleNumber: "MH12AB1234", Type: "Advanced Life Support (ALS)", Driver: "Ramesh Kumar", Status: entities.AmbulanceStatusAvailable},
		{ID: "AMB002", VehicleNumber: "MH14CD5678", Type: "Basic Life Support (BLS)", Driver: "Suresh Patil", Status: entities.AmbulanceStatusOnCall},
		{ID: "AMB003", VehicleNumber: "MH01EF9012", Type: "Patient Transport Vehicle", Driver: "Anil Yadav", Status: entities.AmbulanceStatusAvailable},
		{ID: "AMB004", VehicleNumber: "MH02GH3456", Type: "Advanced Life Support (ALS)", Driver: "Vikram Singh", Status: entities.AmbulanceStatusUnderMaintenance},
	}
}

// OPDQueues returns the seeded outpatient token queues
func OPDQueues() []*entities.OPDQueue {
	return []*entities.OPDQueue{
		{ID: "1", Department: "General Medicine", Doctor: "Dr. Alex Ray", CurrentToken: 25, TotalTokens: 50, AvgWaitMinutes: 15},
		{ID: "2", Department: "Cardiology", Doctor: "Dr. Emily Carter", CurrentToken: 10, TotalTokens: 30, AvgWaitMinutes: 25},
		{ID: "3", Department: "Pediatrics", Doctor: "Dr. John Lee", CurrentToken: 18, TotalTokens: 40, AvgWaitMinutes: 10},
		{ID: "4", Department: "Orthopedics", Doctor: "Dr. Michael Brown", CurrentToken: 5, TotalTokens: 20, AvgWaitMinutes: 30},
	}
}

// Appointments returns the demo patient's history and the demo doctor's
// schedule. Schedule dates are relative to today.
func Appointments(today time.Time) []*entities.Appointment {
	y, m, d := today.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	created := base.AddDate(0, 0, -30)
	day := func(yr int, mo time.Month, dd int) time.Time { return time.Date(yr, mo, dd, 0, 0, 0, 0, time.UTC) }

	history := func(id string, date time.Time, doctorID, doctor, department string, status entities.AppointmentStatus, notes string) *entities.Appointment {
		return &entities.Appointment{
			ID: id, PatientID: DemoPatientID, PatientName: DemoPatientName,
			DoctorID: doctorID, DoctorName: doctor, Department: department,
			Date: date, TimeSlot: "10:00 AM", Mode: entities.AppointmentModeInPerson,
			Status: status, Notes: notes, CreatedAt: date.AddDate(0, 0, -7), UpdatedAt: date,
		}
	}
	schedule := func(id, patientID, patient string, offsetDays int, slot string, status entities.AppointmentStatus, mode entities.AppointmentMode, reason, notes string) *entities.Appointment {
		return &entities.Appointment{
			ID: id, PatientID: patientID, PatientName: patient,
			DoctorID: DemoDoctorID, DoctorName: "Dr. Smith", Department: "Cardiology",
			Date: base.AddDate(0, 0, offsetDays), TimeSlot: slot, Mode: mode,
			Reason: reason, Status: status, Notes: notes, CreatedAt: created, UpdatedAt: created,
		}
	}

	return []*entities.Appointment{
		history("appt_1", day(2024, time.June, 15), "dr_smith_cardio", "Dr. Smith", "Cardiology", entities.AppointmentStatusCompleted, "Follow up in 6 months. Prescribed medication X."),
		history("appt_2", day(2024, time.May, 20), "dr_lee_peds", "Dr. Lee", "Pediatrics", entities.AppointmentStatusCompleted, "Routine check-up. All clear."),
		history("appt_3", day(2024, time.April, 10), "dr_jones_cardio", "Dr. Jones", "Cardiology", entities.AppointmentStatusCanceled, "Patient canceled due to conflict."),
		history("appt_4", day(2024, time.March, 5), "dr_white_neuro", "Dr. White", "Neurology", entities.AppointmentStatusCompleted, "Initial consultation. MRI scheduled."),
		history("appt_5", day(2023, time.December, 1), "dr_smith_cardio", "Dr. Smith", "Cardiology", entities.AppointmentStatusCompleted, "Annual heart check-up. ECG normal."),

		schedule("appt_doc_1", "patient-alice", "Alice Wonderland", 0, "09:00 AM", entities.AppointmentStatusScheduled, entities.AppointmentModeInPerson, "Annual Checkup", ""),
		schedule("appt_doc_2", "patient-bob", "Bob The Builder", 0, "09:30 AM", entities.AppointmentStatusScheduled, entities.AppointmentModeTeleconsultation, "Follow-up Consultation", ""),
		schedule("appt_doc_3", "patient-charlie", "Charlie Brown", -1, "10:00 AM", entities.AppointmentStatusCompleted, entities.AppointmentModeInPerson, "Persistent cough", "Prescribed antibiotics. Follow up if no improvement."),
		schedule("appt_doc_4", "patient-diana", "Diana Prince", 0, "10:30 AM", entities.AppointmentStatusScheduled, entities.AppointmentModeInPerson, "Fever and Cough", ""),
		schedule("appt_doc_5", "patient-edward", "Edward Scissorhands", -2, "11:00 AM", entities.AppointmentStatusCanceled, entities.AppointmentModeTeleconsultation, "Skin rash", "Patient rescheduled."),
		schedule("appt_doc_6", "patient-fiona", "Fiona Gallagher", 1, "02:00 PM", entities.AppointmentStatusScheduled, entities.AppointmentModeTeleconsultation, "Vaccination", ""),
	}
}
